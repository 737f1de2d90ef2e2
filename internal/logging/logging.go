// Package logging wraps github.com/rs/zerolog, the structured logger used
// by the document and the transform pipeline. The events logged are
// Debug-level: a per-component layout being created and a pipeline cache
// hit.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New creates a zerolog.Logger writing to w (os.Stderr if nil) with the
// given component field attached to every event, e.g. New(nil, "pipeline").
func New(w io.Writer, component string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if os.Getenv("DEBUG_LAYOUT") == "1" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
}
