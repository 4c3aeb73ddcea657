package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leochin1206/GeraApp/internal/api"
	"github.com/Leochin1206/GeraApp/internal/auth"
	"github.com/Leochin1206/GeraApp/internal/dashboard"
	"github.com/Leochin1206/GeraApp/internal/db"
	"github.com/Leochin1206/GeraApp/internal/service"
)

func tokenStore() *auth.Store {
	return auth.NewStore(cfg.TokenPath)
}

// newClient returns a backend client carrying the saved bearer token.
func newClient() (*api.Client, error) {
	token, err := tokenStore().Load()
	if err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			return nil, fmt.Errorf("%w: run 'geraapp login' first", err)
		}
		return nil, err
	}
	return api.NewClient(cfg.APIURL, token, cfg.Timeout), nil
}

func newAggregator() *dashboard.Aggregator {
	agg := dashboard.New(logger)
	agg.UpcomingLimit = cfg.UpcomingLimit
	return agg
}

// newDashboardService wires the backend, the aggregator and the cache. The
// returned close func releases the cache database.
func newDashboardService() (*service.DashboardService, func(), error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	svc := service.NewDashboardService(client, database, newAggregator(), logger)
	return svc, func() { database.Close() }, nil
}

// commandContext bounds a backend call by the configured timeout. A timeout
// of zero or less means no deadline.
func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if cfg.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, cfg.Timeout)
}
