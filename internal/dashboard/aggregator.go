// Package dashboard derives the home screen figures from the raw generator and
// event collections: a six month event histogram, the next scheduled events and
// generator utilization. It performs no I/O and keeps no state between calls.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	WindowMonths         = 6
	DefaultUpcomingLimit = 5

	isoDate  = "2006-01-02"
	monthKey = "2006-01"
)

var monthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

type Aggregator struct {
	// Now is read once per Aggregate call. Defaults to time.Now.
	Now func() time.Time
	// Log receives data-quality warnings. Defaults to the logrus standard logger.
	Log           logrus.FieldLogger
	UpcomingLimit int
}

func New(log logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		Now:           time.Now,
		Log:           log,
		UpcomingLimit: DefaultUpcomingLimit,
	}
}

// eventDate is the per-event parse outcome. Only valid entries take part in
// any computation; invalid ones keep the raw string for diagnostics.
type eventDate struct {
	event models.Event
	date  time.Time
	valid bool
}

func (a *Aggregator) log() logrus.FieldLogger {
	if a.Log == nil {
		return logrus.StandardLogger()
	}
	return a.Log
}

func (a *Aggregator) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *Aggregator) classify(events []models.Event, loc *time.Location) ([]eventDate, int) {
	out := make([]eventDate, 0, len(events))
	skipped := 0
	for _, e := range events {
		d, err := time.ParseInLocation(isoDate, e.Date, loc)
		if err != nil {
			skipped++
			a.log().WithFields(logrus.Fields{
				"event_id": e.ID,
				"date":     e.Date,
			}).Warn("skipping event with invalid date")
			out = append(out, eventDate{event: e})
			continue
		}
		out = append(out, eventDate{event: e, date: d, valid: true})
	}
	return out, skipped
}

// Aggregate computes all three views from a single classification of events,
// anchored at one reading of the clock.
func (a *Aggregator) Aggregate(events []models.Event, generators []models.Generator) models.Dashboard {
	ref := a.now()
	parsed, skipped := a.classify(events, ref.Location())

	util, future := a.utilization(parsed, generators, ref)
	return models.Dashboard{
		GeneratedAt:   ref,
		Histogram:     monthly(parsed, ref),
		Upcoming:      SelectUpcoming(future, a.UpcomingLimit),
		Utilization:   util,
		SkippedEvents: skipped,
	}
}

// BuildMonthlyHistogram counts events per calendar month for the six months
// ending at ref's month, oldest first. Events outside the window, past or
// future, are left out.
//
// The month comes from parsing the whole date as a strict YYYY-MM-DD
// calendar date, not from its first seven characters. A timestamp such as
// "2024-03-10T00:00:00" or an impossible day such as "2024-02-30" is logged
// and skipped rather than counted in its prefix month, so the histogram and
// the utilization figures always agree on which events exist.
func (a *Aggregator) BuildMonthlyHistogram(events []models.Event, ref time.Time) []models.MonthBucket {
	parsed, _ := a.classify(events, ref.Location())
	return monthly(parsed, ref)
}

// ComputeUtilization counts the distinct generators referenced by events dated
// today or later. The matching events are returned alongside in input order.
func (a *Aggregator) ComputeUtilization(events []models.Event, generators []models.Generator, today time.Time) (models.UtilizationSnapshot, []models.Event) {
	parsed, _ := a.classify(events, today.Location())
	return a.utilization(parsed, generators, today)
}

func monthly(parsed []eventDate, ref time.Time) []models.MonthBucket {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	buckets := make([]models.MonthBucket, WindowMonths)
	index := make(map[string]int, WindowMonths)
	for i := range buckets {
		m := first.AddDate(0, i-(WindowMonths-1), 0)
		key := m.Format(monthKey)
		buckets[i] = models.MonthBucket{Key: key, Label: monthLabel(m)}
		index[key] = i
	}

	for _, p := range parsed {
		if !p.valid {
			continue
		}
		if i, ok := index[p.date.Format(monthKey)]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %02d", monthNames[t.Month()-1], t.Year()%100)
}

func (a *Aggregator) utilization(parsed []eventDate, generators []models.Generator, today time.Time) (models.UtilizationSnapshot, []models.Event) {
	day := StartOfDay(today)

	inUse := make(map[int]struct{})
	var future []models.Event
	for _, p := range parsed {
		if !p.valid || p.date.Before(day) {
			continue
		}
		inUse[p.event.GeneratorID] = struct{}{}
		future = append(future, p.event)
	}

	total := len(generators)
	available := total - len(inUse)
	if available < 0 {
		a.log().WithFields(logrus.Fields{
			"total":  total,
			"in_use": len(inUse),
		}).Warn("events reference generators missing from the generator list")
		available = 0
	}

	rate := 100.0
	if total > 0 {
		rate = float64(available) / float64(total) * 100
	}

	return models.UtilizationSnapshot{
		TotalGenerators:  total,
		InUseCount:       len(inUse),
		AvailableCount:   available,
		AvailabilityRate: rate,
	}, future
}

// SelectUpcoming orders events by their ISO date string and keeps the first
// limit of them. Events sharing a date keep their input order. A limit of zero
// or less means DefaultUpcomingLimit.
func SelectUpcoming(future []models.Event, limit int) []models.Event {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	sorted := make([]models.Event, len(future))
	copy(sorted, future)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func ChartPoints(buckets []models.MonthBucket) []models.ChartPoint {
	points := make([]models.ChartPoint, len(buckets))
	for i, b := range buckets {
		points[i] = models.ChartPoint{Value: b.Count, Label: b.Label}
	}
	return points
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
