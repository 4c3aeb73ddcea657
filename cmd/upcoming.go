package cmd

import (
	"fmt"

	"github.com/Leochin1206/GeraApp/internal/dashboard"
	"github.com/spf13/cobra"
)

var upcomingLimit int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List the next scheduled events",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		generators, events, err := client.FetchAll(ctx)
		if err != nil {
			return fmt.Errorf("fetching events: %w", err)
		}

		agg := newAggregator()
		now := agg.Now()
		_, future := agg.ComputeUtilization(events, generators, now)
		limit := upcomingLimit
		if limit <= 0 {
			limit = cfg.UpcomingLimit
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Próximos Eventos (%d agendados)\n", len(future))
		fmt.Fprintln(out, "─────────────────────────────")
		printUpcoming(out, dashboard.SelectUpcoming(future, limit))
		return nil
	},
}

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingLimit, "limit", "n", 0, "Number of events to show (default from config)")
	rootCmd.AddCommand(upcomingCmd)
}
