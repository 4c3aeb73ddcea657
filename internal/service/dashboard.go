package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leochin1206/GeraApp/internal/dashboard"
	"github.com/Leochin1206/GeraApp/internal/db"
	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/sirupsen/logrus"
)

type Provider interface {
	FetchAll(ctx context.Context) ([]models.Generator, []models.Event, error)
}

type Cache interface {
	InsertDashboard(d models.Dashboard) (int64, error)
	GetLatestDashboard() (*db.DashboardSnapshot, error)
}

// Result is what a dashboard view renders. When Stale is set, Dashboard comes
// from the cache and Err holds the provider failure that forced the fallback.
type Result struct {
	Dashboard models.Dashboard
	Stale     bool
	Err       error
}

type DashboardService struct {
	provider   Provider
	cache      Cache
	aggregator *dashboard.Aggregator
	log        logrus.FieldLogger
}

func NewDashboardService(provider Provider, cache Cache, aggregator *dashboard.Aggregator, log logrus.FieldLogger) *DashboardService {
	return &DashboardService{
		provider:   provider,
		cache:      cache,
		aggregator: aggregator,
		log:        log,
	}
}

// Refresh fetches both collections, aggregates them and caches the result.
// A cache write failure is logged and does not fail the refresh.
func (s *DashboardService) Refresh(ctx context.Context) (models.Dashboard, error) {
	generators, events, err := s.provider.FetchAll(ctx)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("fetching dashboard data: %w", err)
	}

	d := s.aggregator.Aggregate(events, generators)

	if s.cache != nil {
		if _, err := s.cache.InsertDashboard(d); err != nil {
			s.log.WithError(err).Warn("caching dashboard")
		}
	}

	s.log.WithFields(logrus.Fields{
		"generators": len(generators),
		"events":     len(events),
		"skipped":    d.SkippedEvents,
	}).Debug("dashboard refreshed")

	return d, nil
}

// Load refreshes the dashboard and falls back to the last cached one when the
// provider fails. It errors only when neither source has a dashboard.
func (s *DashboardService) Load(ctx context.Context) (Result, error) {
	d, err := s.Refresh(ctx)
	if err == nil {
		return Result{Dashboard: d}, nil
	}

	if s.cache == nil {
		return Result{}, err
	}

	cached, cacheErr := s.cache.GetLatestDashboard()
	if cacheErr != nil {
		return Result{}, errors.Join(err, fmt.Errorf("reading cached dashboard: %w", cacheErr))
	}
	if cached == nil {
		return Result{}, err
	}

	s.log.WithError(err).WithField("generated_at", cached.Dashboard.GeneratedAt).Warn("backend unavailable, using cached dashboard")
	return Result{Dashboard: cached.Dashboard, Stale: true, Err: err}, nil
}
