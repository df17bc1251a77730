// Package sessionstore holds per-session workflow state for the lifetime of
// the process. State never persists across sessions; the memory store is the
// only implementation by design.
package sessionstore

import (
	"context"
	"errors"

	"github.com/ventuslabs/siteflow/workflow"
)

// Store persists session state within the process.
type Store interface {
	// Load retrieves a session state by id. Returns a deep copy so callers
	// never alias the stored snapshot.
	Load(ctx context.Context, sessionID string) (*workflow.State, error)

	// Save stores a deep copy of the session state, replacing any existing
	// entry.
	Save(ctx context.Context, state *workflow.State) error

	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns all stored session ids.
	List(ctx context.Context) ([]string, error)
}

// Store errors.
var (
	ErrNotFound  = errors.New("session not found")
	ErrInvalidID = errors.New("session id must not be empty")
)
