package lib

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// GetLogger builds the process-wide slog logger and installs it as default.
func GetLogger(level slog.Leveler) *slog.Logger {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	slog.SetDefault(logger)
	return logger
}
