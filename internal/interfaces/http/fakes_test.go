package http_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/document"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

var errDown = errors.New("connection refused")

// ── Usuarios ──

type userRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newUserRepo() *userRepo { return &userRepo{users: map[string]*entity.User{}} }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = "user-" + u.Email
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ── Facturas ──

type invoiceRepo struct {
	items   []*entity.Invoice
	listErr error
}

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	inv.ID = "inv-new"
	r.items = append(r.items, inv)
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
	for _, inv := range r.items {
		if inv.ID == id {
			inv.Status = st
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *invoiceRepo) Delete(_ context.Context, id string) error {
	for i, inv := range r.items {
		if inv.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Contratos ──

type contractRepo struct {
	items map[string]*entity.Contract
}

func (r *contractRepo) GetByID(_ context.Context, id string) (*entity.Contract, error) {
	if c, ok := r.items[id]; ok {
		return c, nil
	}
	return nil, nil
}

func (r *contractRepo) List(context.Context) ([]*entity.Contract, error) {
	out := make([]*entity.Contract, 0, len(r.items))
	for _, c := range r.items {
		if c.Status != entity.ContractDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

// Create y Update toman el paquete de algún contrato existente, como la llave foránea.
func (r *contractRepo) Create(_ context.Context, k *entity.Contract) error {
	pkg, ok := r.pkg(k.Package.ID)
	if !ok {
		return domain.ErrNotFound
	}
	k.ID = fmt.Sprintf("ct-%d", len(r.items)+1)
	k.Package = pkg
	r.items[k.ID] = k
	return nil
}

func (r *contractRepo) Update(_ context.Context, k *entity.Contract) error {
	cur, ok := r.items[k.ID]
	if !ok || cur.Status == entity.ContractDeleted {
		return domain.ErrNotFound
	}
	pkg, ok := r.pkg(k.Package.ID)
	if !ok {
		return domain.ErrNotFound
	}
	k.Package = pkg
	k.PDFURL = ""
	r.items[k.ID] = k
	return nil
}

func (r *contractRepo) pkg(id string) (entity.Package, bool) {
	for _, c := range r.items {
		if c.Package.ID == id {
			return c.Package, true
		}
	}
	return entity.Package{}, false
}

func (r *contractRepo) UpdateStatus(_ context.Context, id string, st entity.ContractStatus) error {
	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = st
	return nil
}

func (r *contractRepo) SetPDFURL(_ context.Context, id, url string) error {
	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.PDFURL = url
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

// ── Clientes ──

type customerRepo struct {
	items []*entity.Customer
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) List(context.Context) ([]*entity.Customer, error) {
	return r.items, nil
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	for _, existing := range r.items {
		if existing.UserName == c.UserName {
			return domain.ErrDuplicate
		}
	}
	c.ID = fmt.Sprintf("cus-%d", len(r.items)+1)
	r.items = append(r.items, c)
	return nil
}

// ── Tablero ──

// dashboardRepo cuenta sobre los fakes de facturas y contratos.
type dashboardRepo struct {
	invoices  *invoiceRepo
	contracts *contractRepo
}

func (r dashboardRepo) InvoicesByStatus(context.Context) (map[entity.InvoiceStatus]int, error) {
	if r.invoices.listErr != nil {
		return nil, r.invoices.listErr
	}
	out := map[entity.InvoiceStatus]int{}
	for _, inv := range r.invoices.items {
		out[inv.Status]++
	}
	return out, nil
}

func (r dashboardRepo) ContractsByStatus(context.Context) (map[entity.ContractStatus]int, error) {
	out := map[entity.ContractStatus]int{}
	for _, c := range r.contracts.items {
		if c.Status != entity.ContractDeleted {
			out[c.Status]++
		}
	}
	return out, nil
}

type docRepo struct {
	files map[string][]byte
	names map[string]string
}

func newDocRepo() *docRepo {
	return &docRepo{files: map[string][]byte{}, names: map[string]string{}}
}

func (r *docRepo) Save(_ context.Context, contractID, filename string, content []byte) error {
	r.files[contractID] = content
	r.names[contractID] = filename
	return nil
}

func (r *docRepo) Get(_ context.Context, contractID string) ([]byte, string, error) {
	return r.files[contractID], r.names[contractID], nil
}

// ── Períodos ──

type periodRepo struct {
	mu      sync.Mutex
	seq     int
	periods map[string]*entity.Period
}

var _ repository.PeriodRepository = (*periodRepo)(nil)

func newPeriodRepo() *periodRepo { return &periodRepo{periods: map[string]*entity.Period{}} }

func (r *periodRepo) Create(_ context.Context, p *entity.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("per-%d", r.seq)
	cp := *p
	r.periods[p.ID] = &cp
	return nil
}

func (r *periodRepo) GetByID(_ context.Context, id string) (*entity.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.periods[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *periodRepo) GetActive(context.Context) (*entity.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.periods {
		if p.IsActive() {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *periodRepo) List(context.Context) ([]*entity.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Period, 0, len(r.periods))
	for _, p := range r.periods {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *periodRepo) Activate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.periods {
		if other.ID != id && other.IsActive() {
			return domain.ErrConflict
		}
	}
	p.Status = entity.StatusActive
	return nil
}

func (r *periodRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.StatusInactive
	return nil
}

func (r *periodRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.periods[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.periods, id)
	return nil
}

// paramRepo sin parámetros: las rutas de parámetros se cubren en el paquete period.
type paramRepo struct{}

func (paramRepo) CreateGlobal(context.Context, *entity.GlobalParameter) error { return nil }
func (paramRepo) ListGlobal(context.Context) ([]*entity.GlobalParameter, error) {
	return nil, nil
}
func (paramRepo) GetGlobal(context.Context, string) (*entity.GlobalParameter, error) {
	return nil, nil
}
func (paramRepo) Attach(context.Context, *entity.PeriodParameter) error { return nil }
func (paramRepo) GetPeriodParameter(context.Context, string) (*entity.PeriodParameter, error) {
	return nil, nil
}
func (paramRepo) ListByPeriod(context.Context, string) ([]*entity.PeriodParameter, error) {
	return nil, nil
}
func (paramRepo) UpdatePeriodParameter(context.Context, *entity.PeriodParameter) error {
	return nil
}
func (paramRepo) Detach(context.Context, string) error { return nil }

type txRunner struct {
	periods repository.PeriodRepository
	params  repository.ParameterRepository
}

func (t txRunner) Run(_ context.Context, fn func(repository.PeriodRepository, repository.ParameterRepository) error) error {
	return fn(t.periods, t.params)
}

// ── Documentos ──

type charMeasurer struct{}

func (charMeasurer) LineCount(text string, _ float64, _ document.Style, maxWidth float64) int {
	n := int(float64(utf8.RuneCountInString(text)*2)/maxWidth) + 1
	return n
}

type renderer struct{}

func (renderer) Render(context.Context, *document.Layout) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

type exporter struct{}

func (exporter) Export(_ context.Context, _ string, _ []string, rows [][]any) ([]byte, error) {
	return []byte{'P', 'K', byte(len(rows))}, nil
}
