package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/infrastructure/postgres"
	"github.com/cyclonet/factonet-api/internal/infrastructure/xlsx"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		f   dto.ListFilter
		out string
	)
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Exporta las facturas filtradas a Excel",
		Example: "  factonet export --status Issued --from 2026-01-01 --to 2026-03-31 --out marzo.xlsx",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := a.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := billing.NewInvoiceUseCase(postgres.NewInvoiceRepository(pool), xlsx.NewExporter())
			content, err := uc.Export(ctx, f)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, content, 0o644); err != nil {
				return err
			}
			a.log.Info().Str("file", out).Int("bytes", len(content)).Msg("facturas exportadas")
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Status, "status", "", "estado de la factura")
	cmd.Flags().StringVar(&f.Number, "number", "", "número (coincidencia parcial)")
	cmd.Flags().StringVar(&f.Client, "client", "", "cliente (coincidencia parcial)")
	cmd.Flags().StringVar(&f.From, "from", "", "fecha de emisión desde (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.To, "to", "", "fecha de emisión hasta (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&out, "out", "o", "Facturas.xlsx", "archivo de salida")
	return cmd
}
