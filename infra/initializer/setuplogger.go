package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	label string
	color lipgloss.AdaptiveColor
}

var levelStyles = map[log.Level]levelStyle{
	log.DebugLevel: {"DEBUG", lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}},
	log.InfoLevel:  {"INFO", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	log.WarnLevel:  {"WARN", lipgloss.AdaptiveColor{Light: "#E6A700", Dark: "#FFD54F"}},
	log.ErrorLevel: {"ERROR", lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF6B6B"}},
}

// Keys whose values are highlighted in text output.
var highlightedKeys = []string{"error", "userID", "service", "pattern", "type", "amount"}

func loggerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, ls := range levelStyles {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(ls.label).
			Bold(true).
			MaxWidth(5).
			Foreground(ls.color)
	}
	errColor := levelStyles[log.ErrorLevel].color
	keyColor := levelStyles[log.DebugLevel].color
	for _, k := range highlightedKeys {
		styles.Keys[k] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[k] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errColor)
	return styles
}

// setupLogger builds the process logger on charmbracelet/log and installs it
// as the slog default.
func setupLogger(cfg *config.Log) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "2006-01-02 15:04:05"}
	}
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(loggerStyles())

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
