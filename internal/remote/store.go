// Package remote provides access to the remote REST store that work
// sessions are replicated to. The Store interface is the boundary the
// sync queue drains against; HTTPStore is the production implementation.
package remote

import "context"

// Store defines the remote persistence operations needed by the sync layer.
type Store interface {
	// Insert creates a new row in the named table and returns the
	// identifier assigned by the remote store.
	Insert(ctx context.Context, table string, payload []byte) (string, error)

	// Update applies a partial update to the row with the given ID.
	Update(ctx context.Context, table, id string, patch []byte) error

	// Delete removes the row with the given ID.
	Delete(ctx context.Context, table, id string) error
}
