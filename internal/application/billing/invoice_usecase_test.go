package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleInvoices() []*entity.Invoice {
	return []*entity.Invoice{
		{
			ID: "1", Code: "INV-001", Client: "Acme S.A.S.", IssueDate: day("2026-01-10"),
			BaseAmount: d("100000"), Status: entity.InvoiceIssued,
			Adjustments: entity.NewAdjustments("iva", d("19000")),
			Operations:  entity.Operations{"iva": entity.OperationAdd},
		},
		{
			ID: "2", Code: "INV-002", Client: "Beta Ltda", IssueDate: day("2026-03-05"),
			BaseAmount: d("200000"), Status: entity.InvoicePaid,
			Adjustments: entity.NewAdjustments("discount", d("20000"), "iva", d("38000")),
			Operations:  entity.Operations{"discount": entity.OperationSubtract, "iva": entity.OperationAdd},
		},
		{
			ID: "3", Code: "INV-003", Client: "Acme S.A.S.", IssueDate: day("2026-02-01"),
			BaseAmount: d("50000"), Status: entity.InvoiceIssued,
			Adjustments: entity.NewAdjustments("late_fee", d("5000")),
		},
	}
}

func TestInvoiceList_ResuelveYOrdena(t *testing.T) {
	uc := billing.NewInvoiceUseCase(&invoiceRepo{items: sampleInvoices()}, nil)

	got, err := uc.List(context.Background(), dto.ListFilter{}, 1, 10)
	require.NoError(t, err)

	// Orden por fecha descendente y columnas en orden de aparición sobre ese orden.
	require.Len(t, got.Items, 3)
	assert.Equal(t, []string{"INV-002", "INV-003", "INV-001"},
		[]string{got.Items[0].Code, got.Items[1].Code, got.Items[2].Code})
	require.Len(t, got.Columns, 3)
	assert.Equal(t, "discount", got.Columns[0].Field)
	assert.Equal(t, "iva", got.Columns[1].Field)
	assert.Equal(t, "IVA", got.Columns[1].Label)
	assert.Equal(t, "late_fee", got.Columns[2].Field)

	beta := got.Items[0]
	assert.True(t, beta.FinalTotal.Equal(d("218000")))
	assert.Equal(t, "-$20.000,oo", beta.Values["discount"])
	assert.Equal(t, "$218.000,oo", beta.FinalTotalText)

	// Valor sin operación: no se aplica y queda reportado.
	fee := got.Items[1]
	assert.True(t, fee.FinalTotal.Equal(d("50000")))
	assert.Equal(t, []string{"late_fee"}, fee.Skipped)
	assert.NotContains(t, fee.Values, "late_fee")
}

func TestInvoiceList_EscenarioIVA(t *testing.T) {
	uc := billing.NewInvoiceUseCase(&invoiceRepo{items: sampleInvoices()[:1]}, nil)
	got, err := uc.List(context.Background(), dto.ListFilter{}, 1, 10)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	inv := got.Items[0]
	assert.True(t, inv.FinalTotal.Equal(d("119000")))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "iva", inv.Lines[0].Field)
	assert.True(t, inv.Lines[0].Value.Equal(d("19000")))
	assert.Equal(t, "ciento diecinueve mil pesos", inv.FinalTotalWords)
}

func TestInvoiceList_Filtros(t *testing.T) {
	uc := billing.NewInvoiceUseCase(&invoiceRepo{items: sampleInvoices()}, nil)
	ctx := context.Background()

	got, err := uc.List(ctx, dto.ListFilter{Status: "issued", Client: "acme"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page.Total)
	// Las columnas salen del conjunto completo, no del filtrado.
	assert.Len(t, got.Columns, 3)

	got, err = uc.List(ctx, dto.ListFilter{From: "2026-02-01", To: "2026-03-05"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page.Total)

	got, err = uc.List(ctx, dto.ListFilter{Number: "zzz"}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Page.TotalPages)

	_, err = uc.List(ctx, dto.ListFilter{Status: "Borrador"}, 1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.List(ctx, dto.ListFilter{From: "10/01/2026"}, 1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceList_Paginado(t *testing.T) {
	uc := billing.NewInvoiceUseCase(&invoiceRepo{items: sampleInvoices()}, nil)
	got, err := uc.List(context.Background(), dto.ListFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page.TotalPages)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "INV-001", got.Items[0].Code)
}

func TestInvoiceList_FacturaInvalidaNoOcultaLasDemas(t *testing.T) {
	items := append(sampleInvoices(),
		&entity.Invoice{
			ID: "9", Code: "INV-009", Client: "Gamma", IssueDate: day("2026-03-20"),
			BaseAmount: d("10000"), Status: entity.InvoiceIssued,
			Adjustments: entity.NewAdjustments("iva", d("1900")),
			Operations:  entity.Operations{"iva": entity.OperationAdd, "penalty": entity.OperationAdd},
		},
		&entity.Invoice{
			ID: "10", Code: "INV-010", Client: "Delta", IssueDate: day("2026-03-21"),
			BaseAmount: d("10000"), Status: entity.InvoiceIssued,
			Adjustments: entity.NewAdjustments("discount", d("-500")),
			Operations:  entity.Operations{"discount": entity.OperationSubtract},
		},
	)
	exp := &exporter{}
	uc := billing.NewInvoiceUseCase(&invoiceRepo{items: items}, exp)

	got, err := uc.List(context.Background(), dto.ListFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got.Items, 4)
	assert.Equal(t, "INV-009", got.Items[0].Code)
	assert.True(t, got.Items[0].FinalTotal.Equal(d("11900")))
	assert.Equal(t, []string{"penalty"}, got.Items[0].Unvalued)
	assert.Equal(t, []string{"INV-010"}, got.Omitted)
	assert.Equal(t, 4, got.Page.Total)

	_, err = uc.Export(context.Background(), dto.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, exp.rows, 4)
}

func TestInvoiceList_FuenteCaida(t *testing.T) {
	uc := billing.NewInvoiceUseCase(&invoiceRepo{listErr: errDown}, nil)
	got, err := uc.List(context.Background(), dto.ListFilter{}, 1, 10)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Nil(t, got)
}

func TestInvoiceGetUpdateDelete(t *testing.T) {
	repo := &invoiceRepo{items: sampleInvoices()}
	uc := billing.NewInvoiceUseCase(repo, nil)
	ctx := context.Background()

	got, err := uc.Get(ctx, "2")
	require.NoError(t, err)
	assert.True(t, got.FinalTotal.Equal(d("218000")))

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.UpdateStatus(ctx, "1", "in arrears"))
	assert.Equal(t, entity.InvoiceInArrears, repo.status["1"])
	assert.ErrorIs(t, uc.UpdateStatus(ctx, "1", "Cancelada"), domain.ErrInvalidStatus)

	require.NoError(t, uc.Delete(ctx, "3"))
	assert.Equal(t, []string{"3"}, repo.deleted)
}

func TestInvoiceCreate(t *testing.T) {
	repo := &invoiceRepo{}
	uc := billing.NewInvoiceUseCase(repo, nil)
	ctx := context.Background()

	got, err := uc.Create(ctx, dto.CreateInvoiceRequest{
		Code: "INV-010", Client: "Acme", IssueDate: "2026-03-01", DueDate: "2026-03-31",
		BaseAmount:  d("100000"),
		Adjustments: entity.NewAdjustments("iva", d("19000"), "discount", d("10000")),
		Operations:  entity.Operations{"iva": "ADD", "discount": "subtract"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new-invoice", got.ID)
	assert.Equal(t, string(entity.InvoiceUnconfirmed), got.Status)
	assert.True(t, got.FinalTotal.Equal(d("109000")))
	require.Len(t, repo.created, 1)
	assert.Equal(t, []string{"iva", "discount"}, repo.created[0].Adjustments.Keys())

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{Code: "X", BaseAmount: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{Code: "X", IssueDate: "2026-03-10", DueDate: "2026-03-01", BaseAmount: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{
		Code: "X", IssueDate: "2026-03-10", BaseAmount: d("1"),
		Operations: entity.Operations{"iva": "add"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "operación sin valor")

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{Code: "X", IssueDate: "2026-03-10", BaseAmount: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Len(t, repo.created, 1)
}

func TestInvoiceExport(t *testing.T) {
	exp := &exporter{}
	uc := billing.NewInvoiceUseCase(&invoiceRepo{items: sampleInvoices()}, exp)

	out, err := uc.Export(context.Background(), dto.ListFilter{Client: "acme"})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	assert.Equal(t, "Facturas", exp.sheet)
	assert.Equal(t, []string{"Número", "Cliente", "Emisión", "Vencimiento", "Estado", "Valor base",
		"Descuento", "IVA", "Intereses de Mora", "Total"}, exp.header)
	require.Len(t, exp.rows, 2)

	first := exp.rows[0]
	assert.Equal(t, "INV-003", first[0])
	assert.Nil(t, first[3], "sin vencimiento")
	assert.Nil(t, first[6], "sin descuento")
	assert.Equal(t, 50000.0, first[len(first)-1])
}

func TestInvoiceExport_SinExportador(t *testing.T) {
	uc := billing.NewInvoiceUseCase(&invoiceRepo{}, nil)
	_, err := uc.Export(context.Background(), dto.ListFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
