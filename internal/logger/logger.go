package logger

import (
	"log/slog"
	"os"
	"strings"

	"ohnitiel/sodapop/internal/config"
)

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// Setup installs the default slog logger: a text handler on the console
// and, when configured, a JSON handler appending to a file. Each side
// keeps its own level.
func Setup(cfg config.LoggerConfigs) error {
	console := os.Stderr
	if cfg.ConsoleOutput == "stdout" {
		console = os.Stdout
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{
			Level: parseLevel(cfg.ConsoleLevel),
		}),
	}

	if cfg.FileOutput != "" {
		logFile, err := os.OpenFile(cfg.FileOutput, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}

		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level:     parseLevel(cfg.FileLevel),
			AddSource: true,
		}))
	}

	slog.SetDefault(slog.New(NewFanout(handlers...)))

	return nil
}
