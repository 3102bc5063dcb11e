// Package logger envuelve zerolog con los campos comunes de FactoNet: aplicación,
// componente y documento (contrato o factura) en curso.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	App   string    // se estampa como "app" en cada entrada
	Env   string    // development -> consola legible; production -> JSON
	Level string    // trace, debug, info, warn (o warning), error
	Out   io.Writer // por defecto os.Stdout
	// Global redirige el logger global de zerolog (librerías que lo usen). Solo el
	// servidor lo activa; la CLI y los tests no tocan el estado global.
	Global bool
}

// Logger wrapper sobre zerolog para inyección y consistencia.
type Logger struct {
	zl zerolog.Logger
}

// New crea un logger estructurado.
func New(cfg Config) *Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	w := out
	if cfg.Env == "development" {
		// Sin colores cuando la salida no es la terminal por defecto.
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: cfg.Out != nil}
	}

	zc := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if app := strings.TrimSpace(cfg.App); app != "" {
		zc = zc.Str("app", app)
	}
	zl := zc.Logger()
	if cfg.Global {
		log.Logger = zl
	}
	return &Logger{zl: zl}
}

// ParseLevel interpreta el nivel sin distinguir mayúsculas; vacío o desconocido es info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Nop logger que descarta todo (tests y CLI silenciosa).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Component sublogger con el campo "component" fijo (http, pdf, cli...).
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Tipos de documento para Document.
const (
	KindContract = "contract"
	KindInvoice  = "invoice"
)

// Document sublogger para el documento que se está generando: "document" lleva el
// tipo y "document_id" el identificador. El código legible va en "document_code" si
// no está vacío.
func (l *Logger) Document(kind, id, code string) *Logger {
	zc := l.zl.With().Str("document", kind).Str("document_id", id)
	if code != "" && code != id {
		zc = zc.Str("document_code", code)
	}
	return &Logger{zl: zc.Logger()}
}
