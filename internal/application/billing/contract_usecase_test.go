package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

func sampleContract(id string) *entity.Contract {
	return &entity.Contract{
		ID:        id,
		Code:      "CT-" + id,
		Value:     d("1500000"),
		Mode:      "Mensual",
		Payday:    5,
		StartDate: day("2026-01-01"),
		EndDate:   day("2026-12-31"),
		Status:    entity.ContractPending,
		Customer: entity.Customer{
			ID: "c1", UserName: "gerencia@acme.co", PersonType: entity.PersonLegal,
			DocumentType: "NIT", DocumentNumber: "900123456-7",
			Legal: &entity.LegalEntity{BusinessName: "Acme S.A.S.", ContactName: "Ana Pérez", ContactPhone: "3001234567"},
		},
		Package: entity.Package{
			ID: "p1", Name: "Plan Pyme", Description: "Facturación y nómina",
			Configurations: []entity.PackageConfiguration{
				{TotalAccount: 3, RoleName: "Operador", Price: d("250000")},
				{TotalAccount: 1, RoleName: "Administrador", Price: d("750000")},
			},
		},
	}
}

func TestContractList(t *testing.T) {
	a := sampleContract("a")
	b := sampleContract("b")
	b.StartDate = day("2026-06-01")
	b.Customer = entity.Customer{UserName: "juan", PersonType: entity.PersonNatural,
		Natural: &entity.NaturalPerson{FirstName: "Juan", FirstSurname: "Gómez"}}
	gone := sampleContract("c")
	gone.Status = entity.ContractDeleted

	uc := billing.NewContractUseCase(newContractRepo(a, b, gone), &customerRepo{})
	got, err := uc.List(context.Background(), dto.ListFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "b", got.Items[0].ID)
	assert.Equal(t, "Juan Gómez", got.Items[0].Client)
	assert.Equal(t, "NIT: 900123456-7", got.Items[1].Document)
	assert.Equal(t, "$1.500.000,oo", got.Items[1].ValueText)
	assert.Equal(t, "un millón quinientos mil pesos", got.Items[1].ValueWords)
	assert.Len(t, got.Items[1].Package.Configurations, 2)

	got, err = uc.List(context.Background(), dto.ListFilter{Client: "ACME", Status: "pending"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "a", got.Items[0].ID)

	_, err = uc.List(context.Background(), dto.ListFilter{Status: "FIRMADO"}, 1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestContractActivation(t *testing.T) {
	ctx := context.Background()
	noPDF := sampleContract("a")
	withPDF := sampleContract("b")
	withPDF.PDFURL = "/api/contracts/b/pdf"
	repo := newContractRepo(noPDF, withPDF)
	uc := billing.NewContractUseCase(repo, &customerRepo{})

	assert.ErrorIs(t, uc.UpdateStatus(ctx, "a", "ACTIVE", true), domain.ErrContractDocumentMissing)
	assert.ErrorIs(t, uc.UpdateStatus(ctx, "b", "active", false), domain.ErrContractNotSigned)
	assert.NotContains(t, repo.status, "b")

	require.NoError(t, uc.UpdateStatus(ctx, "b", "ACTIVE", true))
	assert.Equal(t, entity.ContractActive, repo.status["b"])

	// Otros estados no exigen documento.
	require.NoError(t, uc.UpdateStatus(ctx, "a", "SUSPENDED", false))
	assert.Equal(t, entity.ContractSuspended, repo.status["a"])

	assert.ErrorIs(t, uc.UpdateStatus(ctx, "a", "DELETED", false), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateStatus(ctx, "a", "FIRMADO", false), domain.ErrInvalidStatus)
	assert.ErrorIs(t, uc.UpdateStatus(ctx, "zz", "ACTIVE", true), domain.ErrNotFound)
}

func TestContractDelete(t *testing.T) {
	ctx := context.Background()
	repo := newContractRepo(sampleContract("a"))
	uc := billing.NewContractUseCase(repo, &customerRepo{})

	require.NoError(t, uc.Delete(ctx, "a"))
	_, err := uc.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "zz"), domain.ErrNotFound)
}

func contractRequest() dto.ContractRequest {
	return dto.ContractRequest{
		Code:       "CT-2026-010",
		CustomerID: "c1",
		PackageID:  "p1",
		Value:      d("2000000"),
		Mode:       " mensual ",
		Payday:     10,
		StartDate:  "2026-04-01",
		EndDate:    "2027-03-31",
	}
}

func newContractFixture() (*billing.ContractUseCase, *contractRepo) {
	existing := sampleContract("a")
	repo := newContractRepo(existing)
	customers := &customerRepo{items: map[string]*entity.Customer{"c1": &existing.Customer}}
	return billing.NewContractUseCase(repo, customers), repo
}

func TestContractCreate(t *testing.T) {
	uc, repo := newContractFixture()

	got, err := uc.Create(context.Background(), contractRequest())
	require.NoError(t, err)
	assert.Equal(t, "new-contract", got.ID)
	assert.Equal(t, "PENDING", got.Status)
	assert.Equal(t, "MENSUAL", got.Mode)
	assert.Equal(t, "Acme S.A.S.", got.Client)
	assert.Equal(t, "Plan Pyme", got.Package.Name)
	assert.Equal(t, "dos millones pesos", got.ValueWords)
	assert.Empty(t, got.PDFURL)
	assert.Contains(t, repo.items, "new-contract")
}

func TestContractCreate_Validaciones(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.ContractRequest)
		want   error
	}{
		{"sin cliente", func(r *dto.ContractRequest) { r.CustomerID = " " }, domain.ErrInvalidInput},
		{"sin paquete", func(r *dto.ContractRequest) { r.PackageID = "" }, domain.ErrInvalidInput},
		{"valor negativo", func(r *dto.ContractRequest) { r.Value = d("-1") }, domain.ErrInvalidAmount},
		{"día de pago", func(r *dto.ContractRequest) { r.Payday = 32 }, domain.ErrInvalidInput},
		{"fecha inválida", func(r *dto.ContractRequest) { r.StartDate = "01/04/2026" }, domain.ErrInvalidInput},
		{"sin fecha fin", func(r *dto.ContractRequest) { r.EndDate = "" }, domain.ErrInvalidInput},
		{"fin antes de inicio", func(r *dto.ContractRequest) { r.EndDate = "2026-03-01" }, domain.ErrInvalidInput},
		{"cliente inexistente", func(r *dto.ContractRequest) { r.CustomerID = "zz" }, domain.ErrNotFound},
		{"paquete inexistente", func(r *dto.ContractRequest) { r.PackageID = "zz" }, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newContractFixture()
			in := contractRequest()
			tt.mutate(&in)
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, tt.want)
			assert.NotContains(t, repo.items, "new-contract")
		})
	}
}

func TestContractUpdate(t *testing.T) {
	ctx := context.Background()
	uc, repo := newContractFixture()
	repo.items["a"].PDFURL = "/api/contracts/a/pdf"

	in := contractRequest()
	in.Value = d("1800000")
	got, err := uc.Update(ctx, "a", in)
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "CT-2026-010", got.Code)
	assert.Equal(t, "PENDING", got.Status, "el estado no cambia al editar")
	assert.Empty(t, got.PDFURL, "el PDF anterior ya no corresponde")
	assert.Equal(t, []string{"a"}, repo.updated)

	_, err = uc.Update(ctx, "zz", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in.Payday = -1
	_, err = uc.Update(ctx, "a", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContractUpdate_NoEditaActivosNiBorrados(t *testing.T) {
	ctx := context.Background()
	uc, repo := newContractFixture()

	repo.items["a"].Status = entity.ContractActive
	_, err := uc.Update(ctx, "a", contractRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)

	repo.items["a"].Status = entity.ContractDeleted
	_, err = uc.Update(ctx, "a", contractRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, repo.updated)
}
