package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
	"github.com/mattn/go-isatty"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
}

// New builds a logger writing to w. Terminals get the human readable
// devslog output, everything else JSON.
func New(w io.Writer, level string) (*slog.Logger, error) {
	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level: parsedLevel,
	}

	var handler slog.Handler
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		handler = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: opts,
		})
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler), nil
}

// Init installs a stdout logger as the slog default.
func Init(level string) (*slog.Logger, error) {
	logger, err := New(os.Stdout, level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
