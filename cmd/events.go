package cmd

import (
	"fmt"

	"github.com/Leochin1206/GeraApp/internal/api"
	"github.com/spf13/cobra"
)

var eventFlags api.EventInput
var eventPhone string

var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"eventos"},
	Short:   "Manage scheduled events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		events, err := client.ListEvents(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "Nenhum evento cadastrado.")
			return nil
		}

		fmt.Fprintf(out, "%-6s %-10s %-8s %-25s %-15s %s\n", "ID", "Data", "Gerador", "Local", "Operador", "Responsável")
		for _, e := range events {
			fmt.Fprintf(out, "%-6d %-10s %-8d %-25s %-15s %s\n", e.ID, formatDate(e.Date), e.GeneratorID, e.Location, e.Operator, e.Responsible)
		}
		return nil
	},
}

var eventsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		e, err := client.CreateEvent(ctx, eventInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Evento #%d adicionado para %s.\n", e.ID, formatDate(e.Date))
		return nil
	},
}

var eventsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		e, err := client.UpdateEvent(ctx, id, eventInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Evento #%d atualizado.\n", e.ID)
		return nil
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		if err := client.DeleteEvent(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Evento #%d removido.\n", id)
		return nil
	},
}

func eventInput(cmd *cobra.Command) api.EventInput {
	in := eventFlags
	if cmd.Flags().Changed("phone") {
		p := eventPhone
		in.Phone = &p
	}
	return in
}

func init() {
	for _, c := range []*cobra.Command{eventsAddCmd, eventsEditCmd} {
		c.Flags().StringVarP(&eventFlags.Location, "location", "l", "", "event location")
		c.Flags().StringVar(&eventFlags.Description, "description", "", "event description")
		c.Flags().StringVarP(&eventFlags.Date, "date", "d", "", "event date (YYYY-MM-DD)")
		c.Flags().StringVar(&eventFlags.Operator, "operator", "", "generator operator")
		c.Flags().StringVar(&eventFlags.Responsible, "responsible", "", "person responsible for the event")
		c.Flags().StringVar(&eventPhone, "phone", "", "phone of the person responsible")
		c.Flags().IntVarP(&eventFlags.GeneratorID, "generator", "g", 0, "generator id")
	}

	eventsCmd.AddCommand(eventsListCmd, eventsAddCmd, eventsEditCmd, eventsDeleteCmd)
	rootCmd.AddCommand(eventsCmd)
}
