package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo contratos con su cliente y paquete.
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador.
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractSelect = `
	SELECT k.id, k.code, k.value, k.mode, k.payday, k.start_date, k.end_date, k.status, k.pdf_url,
	       k.created_at, k.updated_at, k.deleted_at,
	       p.id, p.code, p.name, p.description,
	       ` + customerColumns + `
	FROM contracts k
	JOIN customers c ON c.id = k.customer_id
	JOIN packages p ON p.id = k.package_id`

func scanContract(row scanner) (*entity.Contract, error) {
	var k entity.Contract
	var status string
	var cust customerRow
	dest := []any{
		&k.ID, &k.Code, &k.Value, &k.Mode, &k.Payday, &k.StartDate, &k.EndDate, &status, &k.PDFURL,
		&k.CreatedAt, &k.UpdatedAt, &k.DeletedAt,
		&k.Package.ID, &k.Package.Code, &k.Package.Name, &k.Package.Description,
	}
	if err := row.Scan(append(dest, cust.dest()...)...); err != nil {
		return nil, err
	}
	k.Status = entity.ContractStatus(status)
	k.Customer = cust.customer()
	return &k, nil
}

// GetByID obtiene un contrato (incluso borrado); (nil, nil) si no existe.
func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	k, err := scanContract(r.q.QueryRow(ctx, contractSelect+` WHERE k.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	if err := r.loadConfigurations(ctx, []*entity.Contract{k}); err != nil {
		return nil, err
	}
	return k, nil
}

// List contratos no borrados, los de inicio más reciente primero.
func (r *ContractRepo) List(ctx context.Context) ([]*entity.Contract, error) {
	rows, err := r.q.Query(ctx, contractSelect+` WHERE k.deleted_at IS NULL ORDER BY k.start_date DESC, k.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		k, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadConfigurations(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadConfigurations completa Package.Configurations en una sola consulta.
func (r *ContractRepo) loadConfigurations(ctx context.Context, contracts []*entity.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	byPackage := make(map[string][]*entity.Contract)
	ids := make([]string, 0, len(contracts))
	for _, k := range contracts {
		if _, ok := byPackage[k.Package.ID]; !ok {
			ids = append(ids, k.Package.ID)
		}
		byPackage[k.Package.ID] = append(byPackage[k.Package.ID], k)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, package_id, total_account, price, role_name
		FROM package_configurations
		WHERE package_id = ANY($1)
		ORDER BY role_name, id`, ids)
	if err != nil {
		return fmt.Errorf("list package configurations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cfg entity.PackageConfiguration
		var packageID string
		var price decimal.Decimal
		if err := rows.Scan(&cfg.ID, &packageID, &cfg.TotalAccount, &price, &cfg.RoleName); err != nil {
			return fmt.Errorf("scan package configuration: %w", err)
		}
		cfg.Price = price
		for _, k := range byPackage[packageID] {
			k.Package.Configurations = append(k.Package.Configurations, cfg)
		}
	}
	return rows.Err()
}

// Create inserta el contrato con el cliente y el paquete referenciados.
func (r *ContractRepo) Create(ctx context.Context, k *entity.Contract) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	now := time.Now()
	k.CreatedAt, k.UpdatedAt = now, now
	if k.Status == "" {
		k.Status = entity.ContractPending
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO contracts (id, code, customer_id, package_id, value, mode, payday,
			start_date, end_date, status, pdf_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, '', $11, $11)`,
		k.ID, k.Code, k.Customer.ID, k.Package.ID, k.Value, k.Mode, k.Payday,
		k.StartDate, k.EndDate, string(k.Status), now)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente o paquete del contrato", domain.ErrNotFound)
		}
		return fmt.Errorf("create contract: %w", err)
	}
	return nil
}

// Update reemplaza los términos del contrato. El PDF almacenado deja de corresponder y
// se borra en la misma sentencia.
func (r *ContractRepo) Update(ctx context.Context, k *entity.Contract) error {
	var affected int
	err := r.q.QueryRow(ctx, `
		WITH upd AS (
			UPDATE contracts
			SET code = $2, customer_id = $3, package_id = $4, value = $5, mode = $6, payday = $7,
			    start_date = $8, end_date = $9, pdf_url = '', updated_at = now()
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING id
		), doc AS (
			DELETE FROM contract_documents WHERE contract_id IN (SELECT id FROM upd)
		)
		SELECT count(*) FROM upd`,
		k.ID, k.Code, k.Customer.ID, k.Package.ID, k.Value, k.Mode, k.Payday, k.StartDate, k.EndDate,
	).Scan(&affected)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente o paquete del contrato", domain.ErrNotFound)
		}
		return fmt.Errorf("update contract: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	k.PDFURL = ""
	return nil
}

// UpdateStatus cambia el estado de un contrato no borrado.
func (r *ContractRepo) UpdateStatus(ctx context.Context, id string, status entity.ContractStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE contracts SET status = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, string(status))
	if err != nil {
		return fmt.Errorf("update contract status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPDFURL registra la URL del PDF generado.
func (r *ContractRepo) SetPDFURL(ctx context.Context, id, url string) error {
	tag, err := r.q.Exec(ctx, `UPDATE contracts SET pdf_url = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("set contract pdf url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el contrato como DELETED.
func (r *ContractRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE contracts SET status = $2, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id, string(entity.ContractDeleted))
	if err != nil {
		return fmt.Errorf("soft delete contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.ContractDocumentRepository = (*ContractDocumentRepo)(nil)

// ContractDocumentRepo PDF generado de cada contrato (uno por contrato).
type ContractDocumentRepo struct {
	q Querier
}

// NewContractDocumentRepository construye el adaptador.
func NewContractDocumentRepository(q Querier) *ContractDocumentRepo {
	return &ContractDocumentRepo{q: q}
}

// Save reemplaza el documento del contrato.
func (r *ContractDocumentRepo) Save(ctx context.Context, contractID, filename string, content []byte) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contract_documents (contract_id, filename, content, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (contract_id) DO UPDATE
		SET filename = EXCLUDED.filename, content = EXCLUDED.content, created_at = now()`,
		contractID, filename, content)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("save contract document: %w", err)
	}
	return nil
}

// Get devuelve el documento; (nil, "", nil) si no hay.
func (r *ContractDocumentRepo) Get(ctx context.Context, contractID string) ([]byte, string, error) {
	var content []byte
	var filename string
	err := r.q.QueryRow(ctx,
		`SELECT content, filename FROM contract_documents WHERE contract_id = $1`, contractID,
	).Scan(&content, &filename)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("get contract document: %w", err)
	}
	return content, filename, nil
}
