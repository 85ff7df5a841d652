package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config define nível e formato do log.
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // saída legível no terminal
}

// New cria o logger raiz da aplicação.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter é New escrevendo em out.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "motor-comissao").
		Logger()
}

// SetGlobalLogger troca o logger do pacote zerolog/log.
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
