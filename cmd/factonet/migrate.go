package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cyclonet/factonet-api/internal/infrastructure/postgres"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de la base de datos (goose)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withMigrator(cmd.Context(), func(m *postgres.Migrator) error {
					applied, err := m.Up(cmd.Context())
					if err != nil {
						return err
					}
					a.log.Info().Ints64("versions", applied).Msg("migraciones aplicadas")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withMigrator(cmd.Context(), func(m *postgres.Migrator) error {
					v, err := m.Down(cmd.Context())
					if err != nil {
						return err
					}
					a.log.Info().Int64("version", v).Msg("migración revertida")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Muestra el estado de cada migración",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withMigrator(cmd.Context(), func(m *postgres.Migrator) error {
					states, err := m.Status(cmd.Context())
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "VERSIÓN\tARCHIVO\tESTADO\tAPLICADA")
					for _, s := range states {
						state, at := "pendiente", "-"
						if s.Applied {
							state, at = "aplicada", s.AppliedAt.Format("2006-01-02 15:04")
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, s.Source, state, at)
					}
					return w.Flush()
				})
			},
		},
	)
	return cmd
}

func (a *app) withMigrator(ctx context.Context, fn func(m *postgres.Migrator) error) error {
	pool, err := a.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	m, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
