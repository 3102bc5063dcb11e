package billing

import (
	"fmt"
	"strings"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/billing"
	"github.com/cyclonet/factonet-api/internal/domain/document"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/pkg/money"
)

const docDate = "02/01/2006"

// Provider identidad del proveedor impresa en los documentos.
type Provider struct {
	Name    string
	NIT     string
	Address string
	City    string
	Phone   string
	Email   string
	Website string
}

// Composer arma el contenido de contratos y facturas sobre el motor de layout.
type Composer struct {
	measurer document.Measurer
	provider Provider
	logo     *document.Logo
	opts     document.Options
}

// NewComposer logo puede ser nil; en ese caso los documentos salen solo con texto.
func NewComposer(m document.Measurer, provider Provider, logo *document.Logo) *Composer {
	return &Composer{measurer: m, provider: provider, logo: logo, opts: document.DefaultOptions()}
}

// ── Contrato ──────────────────────────────────────────────────────────────────

// Contract compone el contrato de prestación de servicios.
func (c *Composer) Contract(ct *entity.Contract) (*document.Layout, error) {
	if ct == nil {
		return nil, fmt.Errorf("%w: contrato nulo", domain.ErrInvalidInput)
	}
	value, err := money.FormatCurrency(ct.Value)
	if err != nil {
		return nil, err
	}
	words, err := money.AmountInWords(ct.Value)
	if err != nil {
		return nil, err
	}

	l := document.New(c.measurer, c.opts).WithLogo(c.logo)

	l.Centered("CONTRATO DE PRESTACIÓN DE SERVICIOS SAAS", 12, document.StyleBold).
		Centered("CONTRATO No. "+ct.CodeOrID(), 10, document.StyleNormal).
		Space(5)

	c.providerBlock(l, "PROVEEDOR: ")
	l.Space(3)

	cu := ct.Customer
	doc := cu.DocumentLabel()
	if doc == "" {
		doc = "Documento: No especificado"
	}
	l.Text(fmt.Sprintf("CLIENTE: %s - %s", cu.DisplayName(), doc), 9, document.StyleBold)
	if cu.UserName != "" {
		l.Text("Email: "+cu.UserName, 9, document.StyleNormal)
	}
	if cu.IsLegalEntity() && cu.Legal != nil {
		l.Text(fmt.Sprintf("Rep: %s - Tel: %s", orDash(cu.Legal.ContactName), orDash(cu.Legal.ContactPhone)), 9, document.StyleNormal)
	}
	l.Space(4)

	pkg := ct.Package
	desc := strings.TrimSpace(pkg.Description)
	if desc == "" {
		desc = "Sin descripción"
	}
	l.Text("1. OBJETO: Prestación de servicios SaaS", 8, document.StyleBold).
		Text(fmt.Sprintf("Servicio: %s - %s", orDash(pkg.Name), desc), 8, document.StyleNormal)
	for _, cfg := range pkg.Configurations {
		l.Bullet(fmt.Sprintf("%d cuentas %s a %s c/u", cfg.TotalAccount, cfg.RoleName, money.MustFormatCurrency(cfg.Price)), 8)
	}
	l.Space(2)

	clause := fmt.Sprintf("2. VALOR: %s (%s) - Modalidad: %s", value, words, orDash(ct.Mode))
	if ct.Payday > 0 {
		clause += fmt.Sprintf(" - Día pago: %d", ct.Payday)
	}
	l.Text(clause, 8, document.StyleBold).Space(2)

	l.Text(fmt.Sprintf("3. VIGENCIA: %s al %s - Estado: %s",
		formatDate(ct.StartDate), formatDate(ct.EndDate), ct.Status), 8, document.StyleBold).
		Space(2)

	l.Text("4. OBLIGACIONES DEL PROVEEDOR:", 8, document.StyleBold).
		Bullet("Garantizar disponibilidad 24/7", 8).
		Bullet("Soporte técnico", 8).
		Bullet("Seguridad de datos", 8).
		Space(2)

	l.Text("5. OBLIGACIONES DEL CLIENTE:", 8, document.StyleBold).
		Bullet("Pagos puntuales", 8).
		Bullet("Uso conforme a términos", 8).
		Bullet("No compartir credenciales", 8)

	c.signatures(l, "CLIENTE")
	return l, nil
}

// ── Factura ───────────────────────────────────────────────────────────────────

// Invoice compone la factura a partir de su resolución. customer completa el bloque del
// cliente si se conoce; params son los parámetros del período activo marcados para
// documentos. Ambos pueden venir vacíos.
func (c *Composer) Invoice(inv *entity.Invoice, customer *entity.Customer, res *billing.Resolution, params []*entity.PeriodParameter) (*document.Layout, error) {
	if inv == nil || res == nil {
		return nil, fmt.Errorf("%w: factura sin resolver", domain.ErrInvalidInput)
	}
	total, err := money.FormatCurrency(res.FinalTotal)
	if err != nil {
		return nil, fmt.Errorf("factura %s: total final: %w", inv.CodeOrID(), err)
	}
	words, err := money.AmountInWords(res.FinalTotal)
	if err != nil {
		return nil, fmt.Errorf("factura %s: total en letras: %w", inv.CodeOrID(), err)
	}

	l := document.New(c.measurer, c.opts).WithLogo(c.logo)

	l.Centered("FACTURA DE VENTA", 12, document.StyleBold).Space(3)
	c.providerBlock(l, "")
	l.Rule()

	due := "No especificada"
	if !inv.DueDate.IsZero() {
		due = formatDate(inv.DueDate)
	}
	l.Pair("Factura No. "+inv.CodeOrID(), "Estado: "+string(inv.Status), 9, document.StyleBold).
		Pair("Fecha de emisión: "+formatDate(inv.IssueDate), "Vencimiento: "+due, 9, document.StyleNormal).
		Rule()

	client := strings.TrimSpace(inv.Client)
	if customer != nil {
		client = customer.DisplayName()
	}
	if client == "" {
		client = "Cliente no especificado"
	}
	l.Text("FACTURAR A:", 9, document.StyleBold).
		Text(client, 9, document.StyleNormal)
	if customer != nil {
		if doc := customer.DocumentLabel(); doc != "" {
			l.Text(doc, 9, document.StyleNormal)
		}
		if customer.UserName != "" {
			l.Text("Email: "+customer.UserName, 9, document.StyleNormal)
		}
	}
	l.Space(4)

	l.Pair("CONCEPTO", "VALOR", 9, document.StyleBold).
		Pair("Servicio base", "+ "+money.MustFormatCurrency(res.Base), 9, document.StyleNormal)
	for _, li := range res.LineItems {
		l.Pair(li.Label, signed(li.SignedValue.IsNegative(), money.MustFormatCurrency(li.SignedValue.Abs())), 9, document.StyleNormal)
	}
	l.Rule().
		Pair("TOTAL A PAGAR", total, 10, document.StyleBold).
		Text("Son: "+words, 8, document.StyleItalic).
		Space(4)

	if len(params) > 0 {
		l.Text("PARÁMETROS DEL PERÍODO", 8, document.StyleBold)
		for _, p := range params {
			l.Bullet(fmt.Sprintf("%s: %s", p.Parameter.Name, p.Value), 8)
		}
		l.Space(2)
	}

	l.Text("TÉRMINOS Y CONDICIONES", 8, document.StyleBold).
		Bullet("El pago debe realizarse a más tardar en la fecha de vencimiento.", 8).
		Bullet("La mora en el pago puede generar la suspensión del servicio.", 8).
		Bullet("Esta factura se asimila en todos sus efectos a una letra de cambio.", 8)

	return l, nil
}

// ── Bloques comunes ───────────────────────────────────────────────────────────

func (c *Composer) providerBlock(l *document.Layout, prefix string) {
	p := c.provider
	l.Text(fmt.Sprintf("%s%s - NIT: %s", prefix, p.Name, p.NIT), 9, document.StyleBold)
	addr := p.Address
	if p.City != "" {
		addr += " (" + p.City + ")"
	}
	l.Text(fmt.Sprintf("Dir: %s - Tel: %s", orDash(addr), orDash(p.Phone)), 9, document.StyleNormal).
		Text(fmt.Sprintf("Email: %s - Web: %s", orDash(p.Email), orDash(p.Website)), 9, document.StyleNormal)
}

func (c *Composer) signatures(l *document.Layout, counterpart string) {
	l.Space(8).
		Text("FIRMAS:", 8, document.StyleBold).
		Space(10).
		Pair("______________________________", "______________________________", 8, document.StyleNormal).
		Pair(strings.ToUpper(c.provider.Name), counterpart, 8, document.StyleBold)
}

func signed(negative bool, amount string) string {
	if negative {
		return "- " + amount
	}
	return "+ " + amount
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
