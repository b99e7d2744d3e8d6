// Package logging provides the process-wide structured logger. Output goes
// to stderr because stdout carries the MCP stdio protocol.
package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// processID tags every entry so interleaved logs from several server
// instances can be told apart.
var processID = uuid.New().String()

type defaultFieldHook struct{}

func (hook *defaultFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["appName"] = "mcp-server-requests"
	entry.Data["processId"] = processID
	return nil
}

func (hook *defaultFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// GetLogger returns a component-tagged entry on the shared logger.
func GetLogger(name string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"logName": name,
	})
}

// SetLevel parses and applies a logrus level name (debug, info, warn, ...).
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(parsed)
	return nil
}

func init() {
	Logger.Formatter = &logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.ErrorLevel)
	Logger.Hooks.Add(&defaultFieldHook{})
}
