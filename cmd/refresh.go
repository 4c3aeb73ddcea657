package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch data from the backend and cache a new dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := newDashboardService()
		if err != nil {
			return err
		}
		defer closeDB()

		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		d, err := svc.Refresh(ctx)
		if err != nil {
			return err
		}

		u := d.Utilization
		fmt.Fprintf(cmd.OutOrStdout(), "Refreshed: %d/%d generators in use (%.0f%% available), %d upcoming event(s)\n",
			u.InUseCount, u.TotalGenerators, u.AvailabilityRate, len(d.Upcoming))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
