package billing_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/document"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

var errDown = errors.New("connection refused")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Facturas ──

type invoiceRepo struct {
	items   []*entity.Invoice
	listErr error
	created []*entity.Invoice
	status  map[string]entity.InvoiceStatus
	deleted []string
}

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	inv.ID = "new-invoice"
	r.created = append(r.created, inv)
	return nil
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	for _, inv := range r.items {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *invoiceRepo) List(context.Context) ([]*entity.Invoice, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.items, nil
}

func (r *invoiceRepo) UpdateStatus(_ context.Context, id string, st entity.InvoiceStatus) error {
	if r.status == nil {
		r.status = map[string]entity.InvoiceStatus{}
	}
	r.status[id] = st
	return nil
}

func (r *invoiceRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

// ── Contratos ──

type contractRepo struct {
	items    map[string]*entity.Contract
	status   map[string]entity.ContractStatus
	urls     map[string]string
	packages map[string]entity.Package
	updated  []string
}

func newContractRepo(cs ...*entity.Contract) *contractRepo {
	r := &contractRepo{
		items:    map[string]*entity.Contract{},
		status:   map[string]entity.ContractStatus{},
		urls:     map[string]string{},
		packages: map[string]entity.Package{},
	}
	for _, c := range cs {
		r.items[c.ID] = c
		r.packages[c.Package.ID] = c.Package
	}
	return r
}

// Create y Update resuelven el paquete como lo haría la llave foránea.
func (r *contractRepo) Create(_ context.Context, k *entity.Contract) error {
	pkg, ok := r.packages[k.Package.ID]
	if !ok {
		return domain.ErrNotFound
	}
	k.ID = "new-contract"
	k.Package = pkg
	r.items[k.ID] = k
	return nil
}

func (r *contractRepo) Update(_ context.Context, k *entity.Contract) error {
	cur, ok := r.items[k.ID]
	if !ok || cur.Status == entity.ContractDeleted {
		return domain.ErrNotFound
	}
	pkg, ok := r.packages[k.Package.ID]
	if !ok {
		return domain.ErrNotFound
	}
	k.Package = pkg
	k.PDFURL = ""
	r.items[k.ID] = k
	r.updated = append(r.updated, k.ID)
	return nil
}

func (r *contractRepo) GetByID(_ context.Context, id string) (*entity.Contract, error) {
	return r.items[id], nil
}

func (r *contractRepo) List(context.Context) ([]*entity.Contract, error) {
	var out []*entity.Contract
	for _, c := range r.items {
		if c.Status != entity.ContractDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *contractRepo) UpdateStatus(_ context.Context, id string, st entity.ContractStatus) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	r.status[id] = st
	return nil
}

func (r *contractRepo) SetPDFURL(_ context.Context, id, url string) error {
	r.urls[id] = url
	return nil
}

func (r *contractRepo) SoftDelete(_ context.Context, id string) error {
	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = entity.ContractDeleted
	return nil
}

type docRepo struct {
	content  map[string][]byte
	filename map[string]string
}

func newDocRepo() *docRepo {
	return &docRepo{content: map[string][]byte{}, filename: map[string]string{}}
}

func (r *docRepo) Save(_ context.Context, id, filename string, content []byte) error {
	r.content[id] = content
	r.filename[id] = filename
	return nil
}

func (r *docRepo) Get(_ context.Context, id string) ([]byte, string, error) {
	return r.content[id], r.filename[id], nil
}

type customerRepo struct {
	items map[string]*entity.Customer
	err   error
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.items[id], nil
}

func (r *customerRepo) List(context.Context) ([]*entity.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*entity.Customer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName() < out[j].DisplayName() })
	return out, nil
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.items {
		if strings.EqualFold(existing.UserName, c.UserName) {
			return domain.ErrDuplicate
		}
	}
	if r.items == nil {
		r.items = map[string]*entity.Customer{}
	}
	c.ID = fmt.Sprintf("cust-%d", len(r.items)+1)
	r.items[c.ID] = c
	return nil
}

// ── Documentos ──

// charMeasurer 2 mm por carácter.
type charMeasurer struct{}

func (charMeasurer) LineCount(text string, _ float64, _ document.Style, maxWidth float64) int {
	w := float64(utf8.RuneCountInString(text)) * 2
	n := int(w / maxWidth)
	if float64(n)*maxWidth < w {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}

type renderer struct {
	last *document.Layout
	err  error
}

func (r *renderer) Render(_ context.Context, l *document.Layout) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.last = l
	return []byte("%PDF-1.3 fake"), nil
}

type exporter struct {
	sheet  string
	header []string
	rows   [][]any
}

func (e *exporter) Export(_ context.Context, sheet string, header []string, rows [][]any) ([]byte, error) {
	e.sheet, e.header, e.rows = sheet, header, rows
	return []byte("xlsx"), nil
}

type docParams struct {
	items []*entity.PeriodParameter
	err   error
}

func (p docParams) DocumentParameters(context.Context) ([]*entity.PeriodParameter, error) {
	return p.items, p.err
}
