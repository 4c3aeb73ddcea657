package cmd

import (
	"fmt"
	"time"

	"github.com/Leochin1206/GeraApp/internal/db"
	"github.com/spf13/cobra"
)

var historyDays int
var historyPrune bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show cached dashboard history",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		since := time.Now().AddDate(0, 0, -historyDays)
		out := cmd.OutOrStdout()

		if historyPrune {
			removed, err := database.PruneBefore(since)
			if err != nil {
				return fmt.Errorf("pruning history: %w", err)
			}
			fmt.Fprintf(out, "Removed %d cached dashboard(s) older than %d days.\n", removed, historyDays)
			return nil
		}

		snapshots, err := database.GetDashboards(since)
		if err != nil {
			return fmt.Errorf("getting dashboards: %w", err)
		}

		if len(snapshots) == 0 {
			fmt.Fprintln(out, "No data available. Run 'geraapp refresh' first.")
			return nil
		}

		fmt.Fprintf(out, "Dashboard History (last %d days)\n", historyDays)
		fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "%-20s %8s %8s %8s %8s\n", "Time", "Total", "In use", "Free", "%")
		fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────")

		for i := len(snapshots) - 1; i >= 0; i-- {
			d := snapshots[i].Dashboard
			u := d.Utilization
			fmt.Fprintf(out, "%-20s %8d %8d %8d %7.1f%%\n",
				d.GeneratedAt.Local().Format("2006-01-02 15:04"),
				u.TotalGenerators,
				u.InUseCount,
				u.AvailableCount,
				u.AvailabilityRate,
			)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 7, "Number of days to show")
	historyCmd.Flags().BoolVar(&historyPrune, "prune", false, "Delete cached dashboards older than --days instead of listing them")
	rootCmd.AddCommand(historyCmd)
}
