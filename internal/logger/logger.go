// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// stackTracer is satisfied by errors created or wrapped with github.com/pkg/errors.
type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// New returns a logger writing JSON lines to stdout, tagged with serviceName.
// Call sites should use .Stack() on error events to include stacks.
func New(serviceName string) zerolog.Logger {
	return NewWithWriter(serviceName, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(serviceName string, w io.Writer) zerolog.Logger {
	// Stacks come from pkg/errors; plain errors get one attached at the log site.
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	return zerolog.New(w).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// SetLevel sets the global level from a name such as "debug" or "warn".
// An empty name selects info.
func SetLevel(name string) error {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		name = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid log level %q", name)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
