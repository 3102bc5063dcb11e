package billing

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/billing"
	"github.com/cyclonet/factonet-api/internal/domain/document"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
	"github.com/cyclonet/factonet-api/pkg/logger"
)

// Document PDF listo para descargar.
type Document struct {
	Filename string
	Content  []byte
}

// ContractFilename nombre del PDF del contrato: Contrato_<código o id>.pdf
func ContractFilename(c *entity.Contract) string {
	return "Contrato_" + safeName(c.CodeOrID()) + ".pdf"
}

// InvoiceFilename nombre del PDF de la factura: Factura_<código o id>.pdf
func InvoiceFilename(inv *entity.Invoice) string {
	return "Factura_" + safeName(inv.CodeOrID()) + ".pdf"
}

// ContractPDFURL ruta desde la que se sirve el PDF almacenado del contrato.
func ContractPDFURL(contractID string) string {
	return "/api/contracts/" + contractID + "/pdf"
}

// PDFUseCase genera los PDF de contratos y facturas. Cualquier fallo de composición,
// renderizado o almacenamiento se devuelve como error; nunca se entrega un documento
// parcial.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	contracts repository.ContractRepository
	documents repository.ContractDocumentRepository
	customers repository.CustomerRepository
	params    DocumentParameters
	composer  *Composer
	renderer  PDFRenderer
	log       *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias. params y
// customers pueden ser nil.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	contracts repository.ContractRepository,
	documents repository.ContractDocumentRepository,
	customers repository.CustomerRepository,
	params DocumentParameters,
	composer *Composer,
	renderer PDFRenderer,
	log *logger.Logger,
) *PDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{
		invoices:  invoices,
		contracts: contracts,
		documents: documents,
		customers: customers,
		params:    params,
		composer:  composer,
		renderer:  renderer,
		log:       log,
	}
}

// ── Contratos ─────────────────────────────────────────────────────────────────

// DownloadContractPDF devuelve el PDF almacenado del contrato o, si aún no existe, uno
// generado al vuelo (sin guardarlo).
func (uc *PDFUseCase) DownloadContractPDF(ctx context.Context, contractID string) (*Document, error) {
	ct, err := uc.contract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if uc.documents != nil {
		content, filename, err := uc.documents.Get(ctx, ct.ID)
		if err != nil {
			return nil, fmt.Errorf("pdf: leer documento almacenado: %w", err)
		}
		if len(content) > 0 {
			return &Document{Filename: filename, Content: content}, nil
		}
	}
	return uc.renderContract(ctx, ct)
}

// GenerateContractPDF genera el PDF, lo almacena y registra su URL en el contrato.
func (uc *PDFUseCase) GenerateContractPDF(ctx context.Context, contractID string) (*Document, error) {
	if uc.documents == nil {
		return nil, fmt.Errorf("%w: almacenamiento de documentos no configurado", domain.ErrInvalidInput)
	}
	ct, err := uc.contract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	doc, err := uc.renderContract(ctx, ct)
	if err != nil {
		return nil, err
	}
	if err := uc.documents.Save(ctx, ct.ID, doc.Filename, doc.Content); err != nil {
		return nil, fmt.Errorf("pdf: guardar documento: %w", err)
	}
	if err := uc.contracts.SetPDFURL(ctx, ct.ID, ContractPDFURL(ct.ID)); err != nil {
		return nil, fmt.Errorf("pdf: registrar url: %w", err)
	}
	uc.log.Document(logger.KindContract, ct.ID, ct.Code).Info().
		Str("file", doc.Filename).Int("bytes", len(doc.Content)).Msg("contrato generado")
	return doc, nil
}

func (uc *PDFUseCase) contract(ctx context.Context, id string) (*entity.Contract, error) {
	ct, err := uc.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener contrato: %w", err)
	}
	if ct == nil || ct.Status == entity.ContractDeleted {
		return nil, domain.ErrNotFound
	}
	return ct, nil
}

func (uc *PDFUseCase) renderContract(ctx context.Context, ct *entity.Contract) (*Document, error) {
	layout, err := uc.composer.Contract(ct)
	if err != nil {
		return nil, fmt.Errorf("pdf: componer contrato: %w", err)
	}
	return uc.render(ctx, layout, ContractFilename(ct))
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// DownloadInvoicePDF resuelve la factura y genera su PDF. Si el cliente o los
// parámetros del período no se pueden consultar la factura sale sin esos datos.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (*Document, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	res, err := billing.Resolve(inv, billing.DiscoverColumns([]*entity.Invoice{inv}))
	if err != nil {
		return nil, err
	}

	log := uc.log.Document(logger.KindInvoice, inv.ID, inv.Code)
	if len(res.Unvalued) > 0 {
		log.Warn().Strs("unvalued", res.Unvalued).Msg("operaciones sin valor; no afectan el total")
	}

	var customer *entity.Customer
	if uc.customers != nil && inv.CustomerID != "" {
		if customer, err = uc.customers.GetByID(ctx, inv.CustomerID); err != nil {
			log.Warn().Err(err).Str("customer_id", inv.CustomerID).Msg("cliente no disponible; se usa el nombre de la factura")
			customer = nil
		}
	}
	var params []*entity.PeriodParameter
	if uc.params != nil {
		if params, err = uc.params.DocumentParameters(ctx); err != nil {
			log.Warn().Err(err).Msg("parámetros del período no disponibles")
			params = nil
		}
	}

	layout, err := uc.composer.Invoice(inv, customer, res, params)
	if err != nil {
		return nil, fmt.Errorf("pdf: componer factura: %w", err)
	}
	return uc.render(ctx, layout, InvoiceFilename(inv))
}

func (uc *PDFUseCase) render(ctx context.Context, layout *document.Layout, filename string) (*Document, error) {
	if layout.Fallback() {
		uc.log.Warn().Str("file", filename).Msg("logo no disponible; documento solo texto")
	}
	content, err := uc.renderer.Render(ctx, layout)
	if err != nil {
		return nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("pdf: generación fallida: documento vacío")
	}
	return &Document{Filename: filename, Content: content}, nil
}

// safeName deja solo caracteres seguros para un nombre de archivo.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			return r
		}
		return '-'
	}, strings.TrimSpace(s))
}
