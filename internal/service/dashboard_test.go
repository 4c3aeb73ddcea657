package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Leochin1206/GeraApp/internal/api"
	"github.com/Leochin1206/GeraApp/internal/dashboard"
	"github.com/Leochin1206/GeraApp/internal/db"
	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	generators []models.Generator
	events     []models.Event
	err        error
}

func (f *fakeProvider) FetchAll(ctx context.Context) ([]models.Generator, []models.Event, error) {
	return f.generators, f.events, f.err
}

func newService(t *testing.T, provider Provider) (*DashboardService, *db.DB) {
	t.Helper()
	cache, err := db.New(filepath.Join(t.TempDir(), "dashboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	logger, _ := test.NewNullLogger()
	agg := dashboard.New(logger)
	agg.Now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	return NewDashboardService(provider, cache, agg, logger), cache
}

func TestRefresh_AggregatesAndCaches(t *testing.T) {
	provider := &fakeProvider{
		generators: []models.Generator{{ID: 1}, {ID: 2}},
		events: []models.Event{
			{ID: 1, Date: "2024-03-20", GeneratorID: 1},
			{ID: 2, Date: "2024-02-01", GeneratorID: 2},
		},
	}
	svc, cache := newService(t, provider)

	d, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Utilization.InUseCount)
	assert.Equal(t, 50.0, d.Utilization.AvailabilityRate)

	cached, err := cache.GetLatestDashboard()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 1, cached.Dashboard.Utilization.InUseCount)
}

func TestLoad_FallsBackToCache(t *testing.T) {
	provider := &fakeProvider{
		generators: []models.Generator{{ID: 1}},
		events:     []models.Event{{ID: 1, Date: "2024-03-20", GeneratorID: 1}},
	}
	svc, _ := newService(t, provider)

	fresh, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, fresh.Stale)

	provider.err = &api.APIError{StatusCode: 503}
	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Error(t, res.Err)
	assert.Equal(t, 1, res.Dashboard.Utilization.InUseCount)
}

func TestLoad_NoCacheNoBackend(t *testing.T) {
	svc, _ := newService(t, &fakeProvider{err: api.ErrUnauthorized})

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnauthorized))
}
