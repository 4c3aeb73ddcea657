package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current generator availability",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		out := cmd.OutOrStdout()
		if res.Stale {
			printStaleNotice(out, res.Dashboard.GeneratedAt, res.Err)
		}

		fmt.Fprintf(out, "Current Status (as of %s)\n", res.Dashboard.GeneratedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintln(out, "─────────────────────────────")
		printUtilization(out, res.Dashboard.Utilization)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
