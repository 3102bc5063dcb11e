package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cyclonet/factonet-api/internal/infrastructure/postgres"
	"github.com/cyclonet/factonet-api/pkg/config"
	"github.com/cyclonet/factonet-api/pkg/logger"
)

var version = "1.0.0"

// app estado compartido por los subcomandos; se llena en PersistentPreRunE.
type app struct {
	envFile string
	verbose bool
	cfg     *config.Config
	log     *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "factonet",
		Short: "Herramientas de operación de FactoNet",
		Long: `factonet agrupa las tareas de operación del backend de facturación:
migraciones de base de datos, alta del administrador inicial, conversión de
montos a letras, PDF de muestra y exportación de facturas a Excel.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "archivo de variables de entorno")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log en nivel debug")

	root.AddCommand(
		newMigrateCmd(a),
		newCreateAdminCmd(a),
		newWordsCmd(),
		newRenderCmd(a),
		newExportCmd(a),
		newOpenAPICmd(),
	)
	return root
}

// setup carga .env (si existe) antes que viper, luego la configuración y el logger.
func (a *app) setup() error {
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.App.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{App: "factonet", Env: "development", Level: level, Out: os.Stderr}).Component("cli")
	return nil
}

// pool abre la conexión a PostgreSQL con la configuración cargada.
func (a *app) pool(ctx context.Context) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, a.cfg.DB)
}
