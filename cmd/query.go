package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Leochin1206/GeraApp/internal/dashboard"
	"github.com/Leochin1206/GeraApp/internal/db"
	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/Leochin1206/GeraApp/internal/service"
	"github.com/spf13/cobra"
)

var queryDays int

var queryCmd = &cobra.Command{
	Use:   "query [type]",
	Short: "Query dashboard data in JSON format (for agents/scripts)",
	Long: `Query dashboard data in structured JSON format.

Types:
  current      - Full dashboard
  histogram    - Events per month over the last 6 months
  chart        - Histogram as value/label pairs
  upcoming     - Next scheduled events
  utilization  - Generator availability
  history      - Cached dashboards (use --days flag)

Examples:
  geraapp query current
  geraapp query utilization
  geraapp query history --days 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queryType := args[0]

		var result any
		if queryType == "history" {
			database, err := db.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			result, err = queryHistory(database, queryDays)
			if err != nil {
				return err
			}
		} else {
			if _, err := dashboardView(queryType, service.Result{}); err != nil {
				return err
			}

			svc, closeDB, err := newDashboardService()
			if err != nil {
				return err
			}
			defer closeDB()

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()

			res, err := svc.Load(ctx)
			if err != nil {
				return err
			}
			result, err = dashboardView(queryType, res)
			if err != nil {
				return err
			}
		}

		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
}

type CurrentDashboard struct {
	models.Dashboard
	Stale bool   `json:"stale"`
	Error string `json:"error,omitempty"`
}

func dashboardView(queryType string, res service.Result) (any, error) {
	d := res.Dashboard
	switch queryType {
	case "current":
		current := CurrentDashboard{Dashboard: d, Stale: res.Stale}
		if res.Err != nil {
			current.Error = res.Err.Error()
		}
		return current, nil
	case "histogram":
		return d.Histogram, nil
	case "chart":
		return dashboard.ChartPoints(d.Histogram), nil
	case "upcoming":
		return d.Upcoming, nil
	case "utilization":
		return d.Utilization, nil
	default:
		return nil, fmt.Errorf("unknown query type: %s (valid: current, histogram, chart, upcoming, utilization, history)", queryType)
	}
}

type HistoryEntry struct {
	Timestamp        string  `json:"timestamp"`
	TotalGenerators  int     `json:"total_generators"`
	InUse            int     `json:"in_use"`
	Available        int     `json:"available"`
	AvailabilityRate float64 `json:"availability_rate"`
	UpcomingEvents   int     `json:"upcoming_events"`
}

func queryHistory(database *db.DB, days int) (any, error) {
	since := time.Now().AddDate(0, 0, -days)
	snapshots, err := database.GetDashboards(since)
	if err != nil {
		return nil, err
	}

	history := []HistoryEntry{}
	for _, s := range snapshots {
		u := s.Dashboard.Utilization
		history = append(history, HistoryEntry{
			Timestamp:        s.Dashboard.GeneratedAt.Format(time.RFC3339),
			TotalGenerators:  u.TotalGenerators,
			InUse:            u.InUseCount,
			Available:        u.AvailableCount,
			AvailabilityRate: u.AvailabilityRate,
			UpcomingEvents:   len(s.Dashboard.Upcoming),
		})
	}

	return history, nil
}

func init() {
	queryCmd.Flags().IntVarP(&queryDays, "days", "d", 7, "Number of days for history queries")
	rootCmd.AddCommand(queryCmd)
}
