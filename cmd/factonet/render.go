package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/period"
	dombilling "github.com/cyclonet/factonet-api/internal/domain/billing"
	"github.com/cyclonet/factonet-api/internal/domain/document"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	infrapdf "github.com/cyclonet/factonet-api/internal/infrastructure/pdf"
	"github.com/cyclonet/factonet-api/internal/infrastructure/postgres"
)

func newRenderCmd(a *app) *cobra.Command {
	var kind, id, outDir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Genera un PDF de contrato o factura",
		Long: `Sin --id genera un documento de muestra (no usa la base de datos), útil para
revisar el logo y los datos del proveedor. Con --id genera el documento real.`,
		Example: "  factonet render --kind contract\n  factonet render --kind invoice --id 6f1c... --out ./pdf",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				doc *billing.Document
				err error
			)
			if id == "" {
				doc, err = a.renderSample(cmd.Context(), kind)
			} else {
				doc, err = a.renderStored(cmd.Context(), kind, id)
			}
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, doc.Filename)
			if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
				return err
			}
			a.log.Info().Str("file", path).Int("bytes", len(doc.Content)).Msg("PDF generado")
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "contract", "contract | invoice")
	cmd.Flags().StringVar(&id, "id", "", "ID del contrato o factura (vacío = muestra)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directorio de salida")
	return cmd
}

func (a *app) composer() *billing.Composer {
	var logo *document.Logo
	if path := a.cfg.Documents.LogoPath; path != "" {
		l, err := infrapdf.LoadLogo(path)
		if err != nil {
			a.log.Warn().Err(err).Str("path", path).Msg("logo no disponible; documento sin imagen")
		} else {
			logo = l
		}
	}
	p := a.cfg.Provider
	return billing.NewComposer(infrapdf.NewGofpdfMeasurer(), billing.Provider{
		Name: p.Name, NIT: p.NIT, Address: p.Address, City: p.City,
		Phone: p.Phone, Email: p.Email, Website: p.Website,
	}, logo)
}

func (a *app) renderer() *infrapdf.MarotoRenderer {
	return infrapdf.NewMarotoRenderer(a.cfg.App.Name, a.cfg.Provider.Name)
}

func (a *app) renderSample(ctx context.Context, kind string) (*billing.Document, error) {
	var (
		layout   *document.Layout
		filename string
		err      error
	)
	switch kind {
	case "contract":
		ct := sampleContract()
		layout, err = a.composer().Contract(ct)
		filename = billing.ContractFilename(ct)
	case "invoice":
		inv := sampleInvoice()
		var res *dombilling.Resolution
		res, err = dombilling.Resolve(inv, dombilling.DiscoverColumns([]*entity.Invoice{inv}))
		if err == nil {
			layout, err = a.composer().Invoice(inv, nil, res, nil)
		}
		filename = billing.InvoiceFilename(inv)
	default:
		return nil, fmt.Errorf("tipo de documento desconocido %q (contract | invoice)", kind)
	}
	if err != nil {
		return nil, err
	}
	if layout.Fallback() {
		a.log.Warn().Msg("documento generado sin logo")
	}
	content, err := a.renderer().Render(ctx, layout)
	if err != nil {
		return nil, err
	}
	return &billing.Document{Filename: filename, Content: content}, nil
}

func (a *app) renderStored(ctx context.Context, kind, id string) (*billing.Document, error) {
	pool, err := a.pool(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	periods := period.NewUseCase(postgres.NewPeriodRepository(pool), postgres.NewParameterRepository(pool), postgres.NewTxRunner(pool))
	uc := billing.NewPDFUseCase(
		postgres.NewInvoiceRepository(pool),
		postgres.NewContractRepository(pool),
		postgres.NewContractDocumentRepository(pool),
		postgres.NewCustomerRepository(pool),
		periods, a.composer(), a.renderer(), a.log,
	)
	switch kind {
	case "contract":
		return uc.GenerateContractPDF(ctx, id)
	case "invoice":
		return uc.DownloadInvoicePDF(ctx, id)
	}
	return nil, fmt.Errorf("tipo de documento desconocido %q (contract | invoice)", kind)
}

func sampleContract() *entity.Contract {
	now := time.Now()
	return &entity.Contract{
		ID:        "muestra",
		Code:      "CT-MUESTRA",
		Value:     decimal.NewFromInt(119000),
		Mode:      "MENSUAL",
		Payday:    5,
		StartDate: now,
		EndDate:   now.AddDate(1, 0, 0),
		Status:    entity.ContractPending,
		Customer: entity.Customer{
			ID:             "muestra",
			UserName:       "cliente@ejemplo.co",
			PersonType:     "N",
			DocumentType:   "Cédula de ciudadanía",
			DocumentNumber: "1234567890",
			Natural:        &entity.NaturalPerson{FirstName: "Cliente", FirstSurname: "De Muestra"},
		},
		Package: entity.Package{
			ID:          "muestra",
			Name:        "Plan Hogar 100 Mbps",
			Description: "Internet residencial por fibra óptica",
			Configurations: []entity.PackageConfiguration{
				{TotalAccount: 1, RoleName: "Hogar", Price: decimal.NewFromInt(100000)},
			},
		},
	}
}

func sampleInvoice() *entity.Invoice {
	now := time.Now()
	return &entity.Invoice{
		ID:          "muestra",
		Code:        "FAC-MUESTRA",
		Client:      "Cliente De Muestra",
		IssueDate:   now,
		DueDate:     now.AddDate(0, 0, 15),
		BaseAmount:  decimal.NewFromInt(100000),
		Status:      entity.InvoiceUnconfirmed,
		Adjustments: entity.NewAdjustments("iva", 19000, "descuento", 5000),
		Operations:  entity.Operations{"iva": entity.OperationAdd, "descuento": entity.OperationSubtract},
	}
}
