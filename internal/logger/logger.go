package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"studentportal/internal/config"
)

// Log is shared by both servers and every internal package.
var Log = logrus.New()

// Init applies the configured level and picks JSON output for deployed
// environments and text output everywhere else.
func Init(cfg *config.Config) {
	configure(Log, os.Stdout, cfg)
}

func configure(l *logrus.Logger, out io.Writer, cfg *config.Config) {
	l.SetOutput(out)
	l.SetFormatter(formatterFor(cfg.Environment))

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
		l.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
	}
	l.SetLevel(level)
}

func formatterFor(env string) logrus.Formatter {
	switch strings.ToLower(env) {
	case "production", "staging":
		return &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"}
	}
	return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}
}
