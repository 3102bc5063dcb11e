package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/cyclonet/factonet-api/docs"
	"github.com/cyclonet/factonet-api/internal/application/analytics"
	"github.com/cyclonet/factonet-api/internal/application/auth"
	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/period"
	"github.com/cyclonet/factonet-api/internal/domain/document"
	infrapdf "github.com/cyclonet/factonet-api/internal/infrastructure/pdf"
	"github.com/cyclonet/factonet-api/internal/infrastructure/postgres"
	"github.com/cyclonet/factonet-api/internal/infrastructure/xlsx"
	httpRouter "github.com/cyclonet/factonet-api/internal/interfaces/http"
	"github.com/cyclonet/factonet-api/pkg/config"
	"github.com/cyclonet/factonet-api/pkg/logger"
	"github.com/cyclonet/factonet-api/pkg/nit"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:    cfg.App.Name,
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Global: true,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if err := nit.Validate(cfg.Provider.NIT); err != nil {
		log.Warn().Err(err).Str("nit", cfg.Provider.NIT).Msg("NIT del proveedor con dígito de verificación inválido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.MigrateOnStart {
		migrator, err := postgres.NewMigrator(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		applied, err := migrator.Up(ctx)
		_ = migrator.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Ints64("versions", applied).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	documentRepo := postgres.NewContractDocumentRepository(pool)
	periodRepo := postgres.NewPeriodRepository(pool)
	paramRepo := postgres.NewParameterRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sesiones en memoria; el janitor purga las vencidas aunque nadie vuelva a usarlas.
	sessions := auth.NewSessionStore(cfg.Session.IdleTimeout)
	go sessions.RunJanitor(ctx, time.Minute, func(n int) {
		log.Debug().Int("expired", n).Int("open", sessions.Len()).Msg("sesiones vencidas purgadas")
	})

	authUC := auth.NewAuthUseCase(userRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	periodUC := period.NewUseCase(periodRepo, paramRepo, txRunner)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, xlsx.NewExporter())
	contractUC := billing.NewContractUseCase(contractRepo, customerRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo)

	// PDF: sin logo el documento sale con el encabezado de texto.
	var logo *document.Logo
	if cfg.Documents.LogoPath != "" {
		if logo, err = infrapdf.LoadLogo(cfg.Documents.LogoPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.Documents.LogoPath).Msg("logo no disponible; documentos sin imagen")
			logo = nil
		}
	}
	composer := billing.NewComposer(infrapdf.NewGofpdfMeasurer(), billing.Provider{
		Name:    cfg.Provider.Name,
		NIT:     cfg.Provider.NIT,
		Address: cfg.Provider.Address,
		City:    cfg.Provider.City,
		Phone:   cfg.Provider.Phone,
		Email:   cfg.Provider.Email,
		Website: cfg.Provider.Website,
	}, logo)
	pdfUC := billing.NewPDFUseCase(
		invoiceRepo, contractRepo, documentRepo, customerRepo, periodUC,
		composer, infrapdf.NewMarotoRenderer(cfg.App.Name, cfg.Provider.Name),
		log.Component("pdf"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "FactoNet API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; documentación deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Sessions:    sessions,
		InvoiceUC:   invoiceUC,
		ContractUC:  contractUC,
		CustomerUC:  customerUC,
		DashboardUC: dashboardUC,
		PDFUC:       pdfUC,
		PeriodUC:    periodUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
