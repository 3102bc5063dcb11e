package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Session   SessionConfig
	Provider  ProviderConfig
	Documents DocumentsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int
	MigrateOnStart bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string con la contraseña escapada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por coma; "*" permite todos
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig ciclo de vida de la sesión del operador.
type SessionConfig struct {
	IdleTimeout time.Duration
}

// ProviderConfig datos del proveedor que se imprimen en contratos y facturas.
type ProviderConfig struct {
	Name    string
	NIT     string
	Address string
	City    string
	Phone   string
	Email   string
	Website string
}

// DocumentsConfig recursos para los PDF.
type DocumentsConfig struct {
	LogoPath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, PROVIDER_NIT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "factonet"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "factonet"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MaxConns:       getInt(v, "DB_MAX_CONNS", 10),
			MigrateOnStart: getBool(v, "DB_MIGRATE_ON_START", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "factonet"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Session: SessionConfig{
			IdleTimeout: time.Duration(getInt(v, "SESSION_IDLE_MINUTES", 3)) * time.Minute,
		},
		Provider: ProviderConfig{
			Name:    getString(v, "PROVIDER_NAME", "Cyclonet S.A.S."),
			NIT:     getString(v, "PROVIDER_NIT", "901515884-4"),
			Address: getString(v, "PROVIDER_ADDRESS", "Bonanza, Mz 23 Lt 30"),
			City:    getString(v, "PROVIDER_CITY", "Turbaco-Bolívar"),
			Phone:   getString(v, "PROVIDER_PHONE", "314 414 4986 - 321 898 5475"),
			Email:   getString(v, "PROVIDER_EMAIL", "ti.cyclonet@hotmail.com"),
			Website: getString(v, "PROVIDER_WEBSITE", "https://www.cyclonet.com.co/"),
		},
		Documents: DocumentsConfig{
			LogoPath: getString(v, "DOCUMENTS_LOGO_PATH", "assets/img/Cyclonet_nit.png"),
		},
	}

	if cfg.Session.IdleTimeout <= 0 {
		return nil, fmt.Errorf("config: SESSION_IDLE_MINUTES debe ser mayor que cero")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
