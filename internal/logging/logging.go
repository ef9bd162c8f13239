// Package logging configures the process-wide logrus logger and hands out
// component-scoped entries.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup configures the default logrus logger from the logging config values.
// Format is "json" or "text"; level is any logrus level name.
func Setup(level, format string) {
	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// ForComponent returns an entry tagged with the component name. Constructors
// take one of these so log lines are attributable to a subsystem.
func ForComponent(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
