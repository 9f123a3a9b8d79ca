// Command addrfmt formats postal address records from files or stdin.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newLogger returns an slog.Logger backed by charmbracelet/log. An unknown
// level falls back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "addrfmt",
		Level:  lvl,
	})
	if err != nil {
		handler.Warn("invalid log level, using info", "value", level)
	}
	return slog.New(handler)
}
