package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Level is the severity of a console message
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ConsoleLogger implements core.Logger on a terminal, prefixing each line
// with a colored level tag. Colors are dropped when the writer is not a
// terminal or NO_COLOR is set.
type ConsoleLogger struct {
	mu  sync.Mutex
	out *termenv.Output
}

// NewConsoleLogger creates a console logger writing to w
func NewConsoleLogger(w io.Writer, opts ...termenv.OutputOption) *ConsoleLogger {
	return &ConsoleLogger{out: termenv.NewOutput(w, opts...)}
}

// Printf implements core.Logger interface
func (cl *ConsoleLogger) Printf(format string, args ...interface{}) {
	cl.log(LevelInfo, format, args...)
}

// Warnf logs a warning
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.log(LevelWarning, format, args...)
}

// Errorf logs an error
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.log(LevelError, format, args...)
}

func (cl *ConsoleLogger) log(level Level, format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	cl.mu.Lock()
	defer cl.mu.Unlock()
	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintf(cl.out, "%s %s\n", cl.tag(level), line)
	}
}

// tag renders the fixed-width level prefix
func (cl *ConsoleLogger) tag(level Level) string {
	switch level {
	case LevelWarning:
		return cl.out.String("WARN ").Foreground(termenv.ANSIYellow).String()
	case LevelError:
		return cl.out.String("ERROR").Foreground(termenv.ANSIRed).Bold().String()
	default:
		return cl.out.String("INFO ").Foreground(termenv.ANSICyan).String()
	}
}
