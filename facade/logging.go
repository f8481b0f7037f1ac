// File: facade/logging.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime logger construction on top of zerolog.

package facade

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the runtime logger at the requested level. Unknown
// level strings fall back to info.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Str("component", "runtime").
		Logger()
}
