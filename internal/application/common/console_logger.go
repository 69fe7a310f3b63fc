package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ConsoleLogger writes structured log lines to a writer. The daemon and
// CLI entry points attach one to the context so application handlers
// share a single sink.
type ConsoleLogger struct {
	Writer  io.Writer
	Verbose bool
}

// NewConsoleLogger creates a logger writing to stderr
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{Writer: os.Stderr, Verbose: verbose}
}

// Log writes one line: timestamp, level, message, JSON metadata
func (l *ConsoleLogger) Log(level, message string, metadata map[string]interface{}) {
	if level == "DEBUG" && !l.Verbose {
		return
	}

	writer := l.Writer
	if writer == nil {
		writer = os.Stderr
	}

	line := fmt.Sprintf("%s [%s] %s", time.Now().UTC().Format(time.RFC3339), level, message)
	if len(metadata) > 0 {
		if encoded, err := json.Marshal(metadata); err == nil {
			line += " " + string(encoded)
		}
	}
	fmt.Fprintln(writer, line)
}
