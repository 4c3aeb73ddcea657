package dashboard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedAggregator(t *testing.T, now time.Time) (*Aggregator, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	agg := New(logger)
	agg.Now = func() time.Time { return now }
	return agg, hook
}

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func generators(ids ...int) []models.Generator {
	out := make([]models.Generator, len(ids))
	for i, id := range ids {
		out[i] = models.Generator{ID: id, Name: "G"}
	}
	return out
}

func keys(buckets []models.MonthBucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Key
	}
	return out
}

func counts(buckets []models.MonthBucket) []int {
	out := make([]int, len(buckets))
	for i, b := range buckets {
		out[i] = b.Count
	}
	return out
}

func TestAggregate_ReferenceScenario(t *testing.T) {
	agg, _ := fixedAggregator(t, day("2024-03-15 10:30"))

	events := []models.Event{
		{ID: 1, Date: "2024-03-10", GeneratorID: 1},
		{ID: 2, Date: "2024-03-20", GeneratorID: 1},
		{ID: 3, Date: "2024-04-01", GeneratorID: 2},
		{ID: 4, Date: "2023-09-01", GeneratorID: 3},
	}

	d := agg.Aggregate(events, generators(1, 2, 3))

	assert.Equal(t, []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}, keys(d.Histogram))
	// Past and future events inside the window both count; April and September fall outside.
	assert.Equal(t, []int{0, 0, 0, 0, 0, 2}, counts(d.Histogram))

	assert.Equal(t, 3, d.Utilization.TotalGenerators)
	assert.Equal(t, 2, d.Utilization.InUseCount)
	assert.Equal(t, 1, d.Utilization.AvailableCount)
	assert.InDelta(t, 33.333, d.Utilization.AvailabilityRate, 0.01)

	require.Len(t, d.Upcoming, 2)
	assert.Equal(t, 2, d.Upcoming[0].ID)
	assert.Equal(t, 3, d.Upcoming[1].ID)
	assert.Zero(t, d.SkippedEvents)
}

func TestBuildMonthlyHistogram_Window(t *testing.T) {
	agg, _ := fixedAggregator(t, time.Time{})

	tests := []struct {
		name string
		ref  time.Time
		want []string
	}{
		{"mid year", day("2024-06-15 00:00"), []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06"}},
		{"january rolls back into previous year", day("2024-01-10 00:00"), []string{"2023-08", "2023-09", "2023-10", "2023-11", "2023-12", "2024-01"}},
		{"end of month keeps february", day("2024-03-31 23:59"), []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := agg.BuildMonthlyHistogram(nil, tt.ref)
			require.Len(t, buckets, WindowMonths)
			assert.Equal(t, tt.want, keys(buckets))
			assert.Equal(t, tt.ref.Format("2006-01"), buckets[len(buckets)-1].Key)
			for i := 1; i < len(buckets); i++ {
				assert.Less(t, buckets[i-1].Key, buckets[i].Key)
			}
		})
	}
}

func TestBuildMonthlyHistogram_Labels(t *testing.T) {
	agg, _ := fixedAggregator(t, time.Time{})

	buckets := agg.BuildMonthlyHistogram(nil, day("2024-02-01 00:00"))

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"Set 23", "Out 23", "Nov 23", "Dez 23", "Jan 24", "Fev 24"}, labels)
}

func TestBuildMonthlyHistogram_SkipsInvalidDates(t *testing.T) {
	agg, hook := fixedAggregator(t, time.Time{})

	events := []models.Event{
		{ID: 1, Date: "2024-05-02"},
		{ID: 2, Date: "not-a-date"},
		{ID: 3, Date: "2024-13-01"},
		{ID: 4, Date: ""},
		{ID: 5, Date: "2024-06-30"},
	}

	buckets := agg.BuildMonthlyHistogram(events, day("2024-06-15 00:00"))

	assert.Equal(t, []int{0, 0, 0, 0, 1, 1}, counts(buckets))
	require.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 4, hook.LastEntry().Data["event_id"])
}

func TestBuildMonthlyHistogram_StrictDatesOnly(t *testing.T) {
	agg, hook := fixedAggregator(t, day("2024-03-15 09:00"))

	events := []models.Event{
		{ID: 1, Date: "2024-03-10T00:00:00", GeneratorID: 1},
		{ID: 2, Date: "2024-02-30", GeneratorID: 1},
		{ID: 3, Date: "2024-03-10", GeneratorID: 2},
	}

	buckets := agg.BuildMonthlyHistogram(events, day("2024-03-15 00:00"))
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1}, counts(buckets))
	assert.Len(t, hook.AllEntries(), 2)

	d := agg.Aggregate(events, generators(1, 2))
	assert.Equal(t, 1, sum(d.Histogram))
	assert.Equal(t, 2, d.SkippedEvents)
}

func TestBuildMonthlyHistogram_SumNeverExceedsEvents(t *testing.T) {
	agg, _ := fixedAggregator(t, time.Time{})

	inWindow := []models.Event{{Date: "2024-01-01"}, {Date: "2024-03-31"}, {Date: "2024-06-15"}}
	buckets := agg.BuildMonthlyHistogram(inWindow, day("2024-06-15 00:00"))
	assert.Equal(t, len(inWindow), sum(buckets))

	mixed := append(inWindow, models.Event{Date: "2023-12-31"}, models.Event{Date: "2024-07-01"}, models.Event{Date: "bad"})
	buckets = agg.BuildMonthlyHistogram(mixed, day("2024-06-15 00:00"))
	assert.Equal(t, len(inWindow), sum(buckets))
	assert.Less(t, sum(buckets), len(mixed))
}

func sum(buckets []models.MonthBucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

func TestComputeUtilization_DeduplicatesGenerators(t *testing.T) {
	agg, _ := fixedAggregator(t, time.Time{})

	events := []models.Event{
		{ID: 1, Date: "2024-03-15", GeneratorID: 3},
		{ID: 2, Date: "2024-03-16", GeneratorID: 3},
		{ID: 3, Date: "2024-03-14", GeneratorID: 4},
	}

	util, future := agg.ComputeUtilization(events, generators(1, 2, 3, 4), day("2024-03-15 18:45"))

	assert.Equal(t, 1, util.InUseCount)
	assert.Equal(t, 3, util.AvailableCount)
	assert.Equal(t, util.TotalGenerators, util.InUseCount+util.AvailableCount)
	require.Len(t, future, 2)
	assert.Equal(t, 1, future[0].ID)
	assert.Equal(t, 2, future[1].ID)
}

func TestComputeUtilization_Rates(t *testing.T) {
	agg, _ := fixedAggregator(t, time.Time{})
	today := day("2024-03-15 00:00")

	util, future := agg.ComputeUtilization(nil, nil, today)
	assert.Equal(t, 100.0, util.AvailabilityRate)
	assert.Zero(t, util.InUseCount)
	assert.Empty(t, future)

	events := []models.Event{
		{Date: "2024-03-15", GeneratorID: 1},
		{Date: "2024-04-01", GeneratorID: 2},
		{Date: "2025-01-01", GeneratorID: 3},
	}
	util, _ = agg.ComputeUtilization(events, generators(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), today)
	assert.Equal(t, 3, util.InUseCount)
	assert.Equal(t, 7, util.AvailableCount)
	assert.InDelta(t, 70.0, util.AvailabilityRate, 1e-9)
}

func TestComputeUtilization_ClampsDanglingGenerators(t *testing.T) {
	agg, hook := fixedAggregator(t, time.Time{})

	events := []models.Event{
		{Date: "2024-03-20", GeneratorID: 1},
		{Date: "2024-03-21", GeneratorID: 99},
	}

	util, _ := agg.ComputeUtilization(events, generators(1), day("2024-03-15 00:00"))

	assert.Equal(t, 2, util.InUseCount)
	assert.Equal(t, 0, util.AvailableCount)
	assert.Equal(t, 0.0, util.AvailabilityRate)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestComputeUtilization_InvalidDatesNeverInUse(t *testing.T) {
	agg, _ := fixedAggregator(t, time.Time{})

	events := []models.Event{{ID: 7, Date: "2099-02-30", GeneratorID: 1}}
	util, future := agg.ComputeUtilization(events, generators(1), day("2024-03-15 00:00"))

	assert.Zero(t, util.InUseCount)
	assert.Empty(t, future)
}

func TestSelectUpcoming(t *testing.T) {
	future := []models.Event{
		{ID: 1, Date: "2024-05-01"},
		{ID: 2, Date: "2024-03-20"},
		{ID: 3, Date: "2024-04-10"},
		{ID: 4, Date: "2024-03-20"},
		{ID: 5, Date: "2024-12-24"},
		{ID: 6, Date: "2024-03-16"},
		{ID: 7, Date: "2024-08-08"},
	}

	upcoming := SelectUpcoming(future, 5)

	ids := make([]int, len(upcoming))
	for i, e := range upcoming {
		ids[i] = e.ID
	}
	assert.Equal(t, []int{6, 2, 4, 3, 1}, ids)
	assert.Equal(t, 1, future[0].ID, "input must not be reordered")
}

func TestSelectUpcoming_ShortAndDefaultLimit(t *testing.T) {
	future := []models.Event{{ID: 1, Date: "2024-05-01"}, {ID: 2, Date: "2024-04-01"}}

	assert.Len(t, SelectUpcoming(future, 0), 2)
	assert.Len(t, SelectUpcoming(future, 1), 1)

	empty := SelectUpcoming(nil, 5)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestAggregate_EmptyInputs(t *testing.T) {
	agg, _ := fixedAggregator(t, day("2024-03-15 09:00"))

	d := agg.Aggregate(nil, nil)

	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, counts(d.Histogram))
	assert.Empty(t, d.Upcoming)
	assert.Equal(t, 100.0, d.Utilization.AvailabilityRate)
}

func TestAggregate_Idempotent(t *testing.T) {
	agg, _ := fixedAggregator(t, day("2024-03-15 09:00"))

	events := []models.Event{
		{ID: 1, Date: "2024-03-10", GeneratorID: 1},
		{ID: 2, Date: "2024-03-20", GeneratorID: 2},
		{ID: 3, Date: "garbage", GeneratorID: 2},
	}
	gens := generators(1, 2)

	first, err := json.Marshal(agg.Aggregate(events, gens))
	require.NoError(t, err)
	second, err := json.Marshal(agg.Aggregate(events, gens))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregate_CountsSkippedEvents(t *testing.T) {
	agg, hook := fixedAggregator(t, day("2024-03-15 09:00"))

	d := agg.Aggregate([]models.Event{{ID: 1, Date: "15/03/2024"}, {ID: 2, Date: "2024-03-15"}}, generators(1))

	assert.Equal(t, 1, d.SkippedEvents)
	assert.Len(t, hook.AllEntries(), 1, "each bad date is logged once per aggregation")
	assert.Equal(t, 1, d.Histogram[WindowMonths-1].Count)
}

func TestChartPoints(t *testing.T) {
	points := ChartPoints([]models.MonthBucket{{Key: "2024-03", Label: "Mar 24", Count: 4}})
	assert.Equal(t, []models.ChartPoint{{Value: 4, Label: "Mar 24"}}, points)
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Bom dia", Greeting(day("2024-03-15 08:00")))
	assert.Equal(t, "Boa tarde", Greeting(day("2024-03-15 12:00")))
	assert.Equal(t, "Boa noite", Greeting(day("2024-03-15 18:00")))
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Maria", FirstName("Maria da Silva"))
	assert.Equal(t, "Usuário", FirstName("  "))
}
