package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Display the 6-month event chart",
	Long: `Display an ASCII bar chart of events per month over the last six
calendar months, including the current one.

Examples:
  geraapp chart`,
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

		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Eventos - Últimos 6 Meses")
		fmt.Fprintln(out, "  "+strings.Repeat("─", 50))
		printHistogram(out, res.Dashboard.Histogram)
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
}
