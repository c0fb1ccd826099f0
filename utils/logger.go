package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(level)
	return l
}

// InitLogger configures both loggers. level is a logrus level name ("debug", "info", ...);
// the error logger never goes below warn.
func InitLogger(level ...string) {
	infoLevel := logrus.InfoLevel
	if len(level) > 0 && strings.TrimSpace(level[0]) != "" {
		if parsed, err := logrus.ParseLevel(strings.TrimSpace(level[0])); err == nil {
			infoLevel = parsed
		}
	}

	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	InfoLogger.SetLevel(infoLevel)

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if infoLevel < logrus.WarnLevel {
		ErrorLogger.SetLevel(infoLevel)
	} else {
		ErrorLogger.SetLevel(logrus.WarnLevel)
	}
}
