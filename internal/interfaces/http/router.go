package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/analytics"
	"github.com/cyclonet/factonet-api/internal/application/auth"
	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/period"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Sessions    *auth.SessionStore
	InvoiceUC   *billing.InvoiceUseCase
	ContractUC  *billing.ContractUseCase
	CustomerUC  *billing.CustomerUseCase
	DashboardUC *analytics.DashboardUseCase
	PDFUC       *billing.PDFUseCase
	PeriodUC    *period.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	contractHandler := NewContractHandler(deps.ContractUC, deps.PDFUC)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	periodHandler := NewPeriodHandler(deps.PeriodUC)

	// Auth (público)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y sesión viva)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	staff := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Sesión
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Facturas: exigen un período activo vigente
	invoices := protected.Group("/invoices", staff, RequireActivePeriod(deps.PeriodUC))
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/export", invoiceHandler.Export)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)

	// Contratos
	contracts := protected.Group("/contracts", staff)
	contracts.Get("/", contractHandler.List)
	contracts.Post("/", contractHandler.Create)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", contractHandler.Update)
	contracts.Patch("/:id/status", contractHandler.UpdateStatus)
	contracts.Get("/:id/pdf", contractHandler.DownloadPDF)
	contracts.Post("/:id/pdf", contractHandler.GeneratePDF)
	contracts.Delete("/:id", adminOnly, contractHandler.Delete)

	// Clientes
	customers := protected.Group("/customers", staff)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)

	// Tablero
	protected.Get("/dashboard/metrics", staff, dashboardHandler.Metrics)

	// Períodos
	periods := protected.Group("/periods", staff)
	periods.Get("/", periodHandler.List)
	periods.Get("/active", periodHandler.Active)
	periods.Post("/", adminOnly, periodHandler.Create)
	periods.Post("/:id/activate", adminOnly, periodHandler.Activate)
	periods.Post("/:id/deactivate", adminOnly, periodHandler.Deactivate)
	periods.Delete("/:id", adminOnly, periodHandler.Delete)
	periods.Get("/:id/parameters", periodHandler.ListPeriodParameters)
	periods.Post("/:id/parameters", adminOnly, periodHandler.AttachParameters)

	// Parámetros globales
	params := protected.Group("/parameters", staff)
	params.Get("/", periodHandler.ListParameters)
	params.Post("/", adminOnly, periodHandler.CreateParameter)

	periodParams := protected.Group("/period-parameters", staff, adminOnly)
	periodParams.Patch("/:id", periodHandler.UpdatePeriodParameter)
	periodParams.Delete("/:id", periodHandler.DetachParameter)

	// Parámetros de factura del período activo
	invoiceParams := protected.Group("/invoice-parameters", staff)
	invoiceParams.Get("/", periodHandler.InvoiceParameters)
	invoiceParams.Put("/", periodHandler.SaveInvoiceParameters)
}
