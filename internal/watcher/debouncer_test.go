package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_SingleEvent_PassesThrough(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	// When: a single event is added
	d.Add(Event{LibraryID: 3, Timestamp: time.Now()})

	// Then: the event passes through after the debounce window
	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, int64(3), events[0].LibraryID)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_RapidEventsForSameLibrary_Coalesce(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(100 * time.Millisecond)
	defer d.Stop()

	// When: many events for the same library arrive rapidly
	for i := 0; i < 5; i++ {
		d.Add(Event{LibraryID: 1, Timestamp: time.Now()})
		time.Sleep(10 * time.Millisecond)
	}

	// Then: only one event comes out
	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, int64(1), events[0].LibraryID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced events")
	}
}

func TestDebouncer_AllLibrariesAbsorbsSpecificEvents(t *testing.T) {
	// Given: pending per-library events
	d := NewDebouncer(80 * time.Millisecond)
	defer d.Stop()

	d.Add(Event{LibraryID: 1, Timestamp: time.Now()})
	d.Add(Event{LibraryID: 2, Timestamp: time.Now()})

	// When: an all-libraries event arrives in the same window
	d.Add(Event{LibraryID: AllLibraries, Timestamp: time.Now()})

	// Then: a single all-libraries event comes out
	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, AllLibraries, events[0].LibraryID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced events")
	}
}

func TestDebouncer_SpecificEventAfterAllIsRedundant(t *testing.T) {
	d := NewDebouncer(80 * time.Millisecond)
	defer d.Stop()

	d.Add(Event{LibraryID: AllLibraries, Timestamp: time.Now()})
	d.Add(Event{LibraryID: 5, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, AllLibraries, events[0].LibraryID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced events")
	}
}

func TestDebouncer_DistinctLibrariesEmitTogether(t *testing.T) {
	d := NewDebouncer(80 * time.Millisecond)
	defer d.Stop()

	d.Add(Event{LibraryID: 1, Timestamp: time.Now()})
	d.Add(Event{LibraryID: 2, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 2)
		ids := map[int64]bool{}
		for _, ev := range events {
			ids[ev.LibraryID] = true
		}
		assert.True(t, ids[1])
		assert.True(t, ids[2])
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for debounced events")
	}
}

func TestDebouncer_StopIsIdempotent(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	d.Stop()
	d.Stop()

	// Events after stop are dropped silently.
	d.Add(Event{LibraryID: 1, Timestamp: time.Now()})

	_, open := <-d.Output()
	assert.False(t, open)
}
