package syncq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"ojt-tracker/internal/domain"
	"ojt-tracker/internal/errors"
	"ojt-tracker/internal/logging"
	"ojt-tracker/internal/remote"
	"ojt-tracker/internal/repository/sqlite"
)

// Mutation is the envelope queued for later replay against the remote
// store. Data is kept opaque; the queue never inspects it beyond passing
// it through to the remote operation.
type Mutation struct {
	Table string          `json:"table"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Storage is the slice of the local repository the queue needs.
type Storage interface {
	CreatePendingSync(ctx context.Context, entry *sqlite.PendingSync) error
	ListPendingSync(ctx context.Context) ([]*sqlite.PendingSync, error)
	DeletePendingSync(ctx context.Context, id string) error
	CountPendingSync(ctx context.Context) (int, error)
}

// Queue is a durable FIFO of remote mutations. Entries survive restarts
// via the local repository and are retried until the remote accepts them.
// There is no backoff and no retry cap; a drain pass simply skips entries
// the remote rejects and the next pass tries them again.
type Queue struct {
	storage Storage
	store   remote.Store
	monitor *Monitor
	mapper  *domain.PendingSyncMapper

	mu          sync.Mutex
	draining    bool
	unsubscribe func()
	now         func() time.Time
}

// NewQueue creates a queue draining to the given remote store. The queue
// subscribes to the monitor and starts a drain whenever connectivity
// comes back.
func NewQueue(storage Storage, store remote.Store, monitor *Monitor) *Queue {
	q := &Queue{
		storage: storage,
		store:   store,
		monitor: monitor,
		mapper:  domain.NewPendingSyncMapper(),
		now:     time.Now,
	}

	q.unsubscribe = monitor.Subscribe(func(online bool) {
		if online {
			go q.Drain(context.Background())
		}
	})

	return q
}

// Close detaches the queue from the connectivity monitor.
func (q *Queue) Close() {
	if q.unsubscribe != nil {
		q.unsubscribe()
		q.unsubscribe = nil
	}
}

// Enqueue persists a mutation for later replay. When the device is
// currently online a drain is kicked off immediately in the background.
func (q *Queue) Enqueue(ctx context.Context, op domain.SyncOp, mutation Mutation) error {
	if !op.IsValid() {
		return errors.NewValidationError("unknown sync operation: "+string(op), nil)
	}

	payload, err := json.Marshal(mutation)
	if err != nil {
		return errors.NewPersistenceError("encode pending mutation", err)
	}

	entry := domain.PendingSync{
		ID:         uuid.NewString(),
		Op:         op,
		Payload:    payload,
		EnqueuedAt: q.now(),
	}

	row := q.mapper.ToDatabase(entry)
	if err := q.storage.CreatePendingSync(ctx, &row); err != nil {
		return err
	}

	logging.Debugf("syncq: enqueued %s for %s", op, mutation.Table)

	if q.monitor.Online() {
		go q.Drain(context.Background())
	}
	return nil
}

// Drain replays all pending mutations against the remote store in enqueue
// order. Entries the remote rejects stay queued and the pass moves on to
// the next entry. Only one drain runs at a time; a call made while another
// drain is in progress returns immediately.
func (q *Queue) Drain(ctx context.Context) error {
	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return nil
	}
	q.draining = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.draining = false
		q.mu.Unlock()
	}()

	rows, err := q.storage.ListPendingSync(ctx)
	if err != nil {
		return err
	}

	for _, entry := range q.mapper.FromDatabaseSlice(rows) {
		if err := q.replay(ctx, entry); err != nil {
			logging.Debugf("syncq: entry %s failed, keeping for retry: %v", entry.ID, err)
			continue
		}

		if err := q.storage.DeletePendingSync(ctx, entry.ID); err != nil {
			return err
		}
	}

	return nil
}

// replay applies a single queued mutation to the remote store.
func (q *Queue) replay(ctx context.Context, entry domain.PendingSync) error {
	var mutation Mutation
	if err := json.Unmarshal(entry.Payload, &mutation); err != nil {
		return errors.NewPersistenceError("decode pending mutation", err)
	}

	switch entry.Op {
	case domain.SyncOpCreate:
		_, err := q.store.Insert(ctx, mutation.Table, mutation.Data)
		return err
	case domain.SyncOpUpdate:
		return q.store.Update(ctx, mutation.Table, mutation.ID, mutation.Data)
	case domain.SyncOpDelete:
		return q.store.Delete(ctx, mutation.Table, mutation.ID)
	default:
		return errors.NewValidationError("unknown sync operation: "+string(entry.Op), nil)
	}
}

// Pending returns the number of mutations waiting to be replayed.
func (q *Queue) Pending(ctx context.Context) (int, error) {
	return q.storage.CountPendingSync(ctx)
}

// Draining reports whether a drain pass is currently running.
func (q *Queue) Draining() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.draining
}
