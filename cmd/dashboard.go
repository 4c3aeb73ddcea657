package cmd

import (
	"fmt"
	"time"

	"github.com/Leochin1206/GeraApp/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardChart bool

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"home"},
	Short:   "Show the generator utilization dashboard",
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
		} else {
			name := ""
			if client, err := newClient(); err == nil {
				if user, err := client.Me(ctx); err == nil {
					name = user.Name
				} else {
					logger.WithError(err).Debug("fetching current user")
				}
			}
			fmt.Fprintf(out, "%s, %s!\n\n", dashboard.Greeting(time.Now()), dashboard.FirstName(name))
		}

		d := res.Dashboard

		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "              GeraApp")
		fmt.Fprintln(out, "═══════════════════════════════════════")

		fmt.Fprintln(out, "\n⚡ Geradores")
		fmt.Fprintln(out, "─────────────────────")
		printUtilization(out, d.Utilization)

		fmt.Fprintln(out, "\n📅 Próximos Eventos")
		fmt.Fprintln(out, "─────────────────────")
		printUpcoming(out, d.Upcoming)

		if dashboardChart {
			fmt.Fprintln(out, "\n📊 Eventos - Últimos 6 Meses")
			fmt.Fprintln(out, "─────────────────────")
			printHistogram(out, d.Histogram)
		}

		if d.SkippedEvents > 0 {
			fmt.Fprintf(out, "\n%d event(s) with an invalid date were ignored.\n", d.SkippedEvents)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().BoolVarP(&dashboardChart, "chart", "c", false, "Show the 6-month event chart inline")
	rootCmd.AddCommand(dashboardCmd)
}
