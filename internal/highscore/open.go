package highscore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string        // file backend
	MaxAge  time.Duration // file backend, 0 keeps records forever
	DSN     string        // sqlite backend, a file path
}

// Open builds the Store named by opts.Backend.
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(opts.Dir, opts.MaxAge, logger)
	case BackendSQLite:
		return OpenSQLite(ctx, opts.DSN, logger)
	default:
		return nil, fmt.Errorf("highscore: unknown backend %q", opts.Backend)
	}
}
