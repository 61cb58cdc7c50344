package syncq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitorTransitions(t *testing.T) {
	monitor := NewMonitor(false)
	assert.False(t, monitor.Online())

	var events []bool
	unsubscribe := monitor.Subscribe(func(online bool) {
		events = append(events, online)
	})

	monitor.SetOnline(false) // no transition
	monitor.SetOnline(true)
	monitor.SetOnline(true) // no transition
	monitor.SetOnline(false)

	assert.True(t, monitor.Online() == false)
	assert.Equal(t, []bool{true, false}, events)

	unsubscribe()
	monitor.SetOnline(true)
	assert.Equal(t, []bool{true, false}, events)

	// unsubscribing again is harmless
	unsubscribe()
}

func TestMonitorMultipleSubscribers(t *testing.T) {
	monitor := NewMonitor(false)

	var first, second int
	monitor.Subscribe(func(online bool) { first++ })
	removeSecond := monitor.Subscribe(func(online bool) { second++ })

	monitor.SetOnline(true)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	removeSecond()
	monitor.SetOnline(false)
	assert.Equal(t, 2, first)
	assert.Equal(t, 1, second)
}

func TestMonitorHandlerMayReadState(t *testing.T) {
	monitor := NewMonitor(false)

	var seen bool
	monitor.Subscribe(func(online bool) {
		// Handlers run outside the monitor lock.
		seen = monitor.Online()
	})

	monitor.SetOnline(true)
	assert.True(t, seen)
}
