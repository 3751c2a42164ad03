package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger embrulha o slog.Logger para todas as camadas usarem o mesmo logger JSON.
type Logger struct {
	*slog.Logger
}

// New cria um logger JSON no stdout com o nível informado.
func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter é o New com destino explícito (usado nos testes).
func NewWithWriter(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{Logger: slog.New(handler)}
}

// Default retorna um logger no nível info.
func Default() *Logger {
	return New("info")
}

// Discard descarta tudo. Útil em testes que não checam log.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error")
}

// With retorna um logger filho com os atributos informados.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
