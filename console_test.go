package main

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func newTestConsole() (*ConsoleLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewConsoleLogger(&buf, termenv.WithProfile(termenv.Ascii)), &buf
}

func TestConsoleLogger_Levels(t *testing.T) {
	logger, buf := newTestConsole()

	logger.Printf("Parsed %d objects.\n", 3)
	logger.Warnf("texture %s missing", "wood.png")
	logger.Errorf("render failed: %v\n", "boom")

	expected := "INFO  Parsed 3 objects.\n" +
		"WARN  texture wood.png missing\n" +
		"ERROR render failed: boom\n"
	assert.Equal(t, expected, buf.String())
}

func TestConsoleLogger_MultiLine(t *testing.T) {
	logger, buf := newTestConsole()

	logger.Printf("first\nsecond\n")
	assert.Equal(t, "INFO  first\nINFO  second\n", buf.String())
}

func TestConsoleLogger_Colored(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, termenv.WithProfile(termenv.ANSI))

	logger.Errorf("boom")
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom\n")
}
