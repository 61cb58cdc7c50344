// Package syncq implements the offline mutation queue. Mutations against
// the remote store are persisted locally first and drained to the remote
// in FIFO order whenever connectivity is available.
package syncq

import "sync"

// Monitor tracks connectivity state and notifies subscribers on change.
// It is a plain state holder; callers feed it transitions from whatever
// signal they have (network callbacks, probe loops, manual toggles).
type Monitor struct {
	mu       sync.Mutex
	online   bool
	nextID   int
	handlers map[int]func(online bool)
}

// NewMonitor creates a monitor with the given initial state.
func NewMonitor(online bool) *Monitor {
	return &Monitor{
		online:   online,
		handlers: make(map[int]func(online bool)),
	}
}

// Online reports the current connectivity state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline updates the state. Handlers fire only on actual transitions,
// so repeated reports of the same state are cheap no-ops.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	handlers := make([]func(online bool), 0, len(m.handlers))
	for _, h := range m.handlers {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()

	// Invoked outside the lock so handlers may call back into the monitor.
	for _, h := range handlers {
		h(online)
	}
}

// Subscribe registers a handler for connectivity transitions and returns
// a function that removes it. Unsubscribing twice is harmless.
func (m *Monitor) Subscribe(handler func(online bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.handlers[id] = handler
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.handlers, id)
		m.mu.Unlock()
	}
}
