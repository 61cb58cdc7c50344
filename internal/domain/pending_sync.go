package domain

import (
	"encoding/json"
	"time"
)

// SyncOp represents the kind of remote mutation a queue entry replays.
type SyncOp string

const (
	// SyncOpCreate maps to a remote insert.
	SyncOpCreate SyncOp = "create"
	// SyncOpUpdate maps to a remote patch.
	SyncOpUpdate SyncOp = "update"
	// SyncOpDelete maps to a remote delete.
	SyncOpDelete SyncOp = "delete"
)

// IsValid returns true for a known sync operation.
func (op SyncOp) IsValid() bool {
	switch op {
	case SyncOpCreate, SyncOpUpdate, SyncOpDelete:
		return true
	}
	return false
}

// PendingSync is one queued remote mutation awaiting replay. The payload is
// opaque to the queue itself; it must carry everything needed to replay the
// operation. EnqueuedAt is used only for ordering and diagnostics, never for
// conflict resolution.
type PendingSync struct {
	ID         string
	Op         SyncOp
	Payload    json.RawMessage
	EnqueuedAt time.Time
}
