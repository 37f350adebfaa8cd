package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env   string // development -> consola legible; cualquier otro -> JSON
	Level string // trace, debug, info, warn, error
}

// Logger wrapper sobre zerolog para inyección y consistencia.
type Logger struct {
	zl zerolog.Logger
}

// New crea un logger estructurado y lo instala también como logger global de
// zerolog, para el código que loguea vía rs/zerolog/log directamente.
func New(cfg Config) *Logger {
	zl := zerolog.New(writerFor(cfg.Env)).
		Level(levelFor(cfg)).
		With().
		Timestamp().
		Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

// writerFor elige la salida: consola legible en development, JSON en el resto.
func writerFor(env string) io.Writer {
	if env == "development" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

// levelFor resuelve el nivel configurado; si no es válido, debug en
// development e info en el resto.
func levelFor(cfg Config) zerolog.Level {
	if level, err := zerolog.ParseLevel(cfg.Level); err == nil && level != zerolog.NoLevel {
		return level
	}
	if cfg.Env == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Component devuelve un sublogger con el campo component fijo.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos arbitrarios.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
