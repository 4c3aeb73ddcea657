package cmd

import (
	"fmt"
	"strconv"

	"github.com/Leochin1206/GeraApp/internal/api"
	"github.com/spf13/cobra"
)

var (
	generatorName  string
	generatorPhoto string
)

var generatorsCmd = &cobra.Command{
	Use:     "generators",
	Aliases: []string{"geradores"},
	Short:   "Manage generators",
}

var generatorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generators",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		generators, err := client.ListGenerators(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(generators) == 0 {
			fmt.Fprintln(out, "Nenhum gerador cadastrado.")
			return nil
		}

		fmt.Fprintf(out, "%-6s %-30s %s\n", "ID", "Nome", "Foto")
		for _, g := range generators {
			photo := "-"
			if g.Photo != nil && *g.Photo != "" {
				photo = *g.Photo
			}
			fmt.Fprintf(out, "%-6d %-30s %s\n", g.ID, g.Name, photo)
		}
		return nil
	},
}

var generatorsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		g, err := client.CreateGenerator(ctx, generatorInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Gerador #%d adicionado.\n", g.ID)
		return nil
	},
}

var generatorsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a generator",
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

		g, err := client.UpdateGenerator(ctx, id, generatorInput(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Gerador #%d atualizado.\n", g.ID)
		return nil
	},
}

var generatorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a generator",
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

		if err := client.DeleteGenerator(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Gerador #%d removido.\n", id)
		return nil
	},
}

func generatorInput(cmd *cobra.Command) api.GeneratorInput {
	in := api.GeneratorInput{Name: generatorName}
	if cmd.Flags().Changed("photo") {
		p := generatorPhoto
		in.Photo = &p
	}
	return in
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", s)
	}
	return id, nil
}

func init() {
	for _, c := range []*cobra.Command{generatorsAddCmd, generatorsEditCmd} {
		c.Flags().StringVarP(&generatorName, "name", "n", "", "generator name")
		c.Flags().StringVar(&generatorPhoto, "photo", "", "photo reference (URL or path known to the backend)")
		c.MarkFlagRequired("name")
	}

	generatorsCmd.AddCommand(generatorsListCmd, generatorsAddCmd, generatorsEditCmd, generatorsDeleteCmd)
	rootCmd.AddCommand(generatorsCmd)
}
