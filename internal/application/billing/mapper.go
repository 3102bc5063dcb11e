package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/billing"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/listing"
	"github.com/cyclonet/factonet-api/pkg/money"
)

const isoDate = "2006-01-02"

// criteria convierte los filtros de la query. normalize valida y normaliza el estado.
func criteria(f dto.ListFilter, normalize func(string) (string, error)) (listing.Criteria, error) {
	c := listing.Criteria{Number: f.Number, Client: f.Client}
	if s := strings.TrimSpace(f.Status); s != "" {
		st, err := normalize(s)
		if err != nil {
			return c, err
		}
		c.Status = st
	}
	var err error
	if c.From, err = parseOptionalDate("from", f.From); err != nil {
		return c, err
	}
	if c.To, err = parseOptionalDate("to", f.To); err != nil {
		return c, err
	}
	return c, nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe tener formato AAAA-MM-DD", domain.ErrInvalidInput, field)
	}
	return &t, nil
}

func invoiceStatus(s string) (string, error) {
	st, err := entity.ParseInvoiceStatus(s)
	return string(st), err
}

func contractStatus(s string) (string, error) {
	st, err := entity.ParseContractStatus(s)
	return string(st), err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(docDate)
}

func isoOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoDate)
}

func pageResponse[T any](p listing.Page[T]) dto.PageResponse {
	return dto.PageResponse{Page: p.Page, Size: p.Size, Total: p.Total, TotalPages: p.TotalPages}
}

func columnsResponse(columns []string) []dto.ColumnResponse {
	out := make([]dto.ColumnResponse, 0, len(columns))
	for _, f := range columns {
		out = append(out, dto.ColumnResponse{Field: f, Label: billing.Label(f)})
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice, res *billing.Resolution, columns []string) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:             inv.ID,
		Code:           inv.Code,
		CustomerID:     inv.CustomerID,
		Client:         inv.Client,
		IssueDate:      isoOrEmpty(inv.IssueDate),
		DueDate:        isoOrEmpty(inv.DueDate),
		Status:         string(inv.Status),
		BaseAmount:     res.Base,
		Values:         make(map[string]string, len(columns)),
		Lines:          make([]dto.AdjustmentLineResponse, 0, len(res.LineItems)),
		Skipped:        res.Skipped,
		Unvalued:       res.Unvalued,
		FinalTotal:     res.FinalTotal,
		FinalTotalText: money.MustFormatCurrency(res.FinalTotal),
	}
	// Un total negativo no tiene representación en letras.
	if words, err := money.AmountInWords(res.FinalTotal); err == nil {
		resp.FinalTotalWords = words
	}
	for _, f := range columns {
		if v, ok := res.Value(f); ok {
			resp.Values[f] = money.MustFormatCurrency(v)
		}
	}
	for _, li := range res.LineItems {
		resp.Lines = append(resp.Lines, dto.AdjustmentLineResponse{Field: li.Field, Label: li.Label, Value: li.SignedValue})
	}
	return resp
}

func toContractResponse(c *entity.Contract) dto.ContractResponse {
	resp := dto.ContractResponse{
		ID:        c.ID,
		Code:      c.Code,
		Client:    c.Customer.DisplayName(),
		Document:  c.Customer.DocumentLabel(),
		Value:     c.Value,
		ValueText: money.MustFormatCurrency(c.Value),
		Mode:      c.Mode,
		Payday:    c.Payday,
		StartDate: isoOrEmpty(c.StartDate),
		EndDate:   isoOrEmpty(c.EndDate),
		Status:    string(c.Status),
		PDFURL:    c.PDFURL,
		Package: dto.PackageResponse{
			ID:             c.Package.ID,
			Code:           c.Package.Code,
			Name:           c.Package.Name,
			Description:    c.Package.Description,
			Configurations: make([]dto.PackageConfigurationResponse, 0, len(c.Package.Configurations)),
		},
	}
	if words, err := money.AmountInWords(c.Value); err == nil {
		resp.ValueWords = words
	}
	for _, cfg := range c.Package.Configurations {
		resp.Package.Configurations = append(resp.Package.Configurations, dto.PackageConfigurationResponse{
			TotalAccount: cfg.TotalAccount, RoleName: cfg.RoleName, Price: cfg.Price,
		})
	}
	return resp
}
