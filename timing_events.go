package tpa

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

type timingEvent struct {
	handle         TimingEvent
	startTimestamp int64
}

// TimingEvents correlates caller supplied identifiers with SDK timing handles
// and their start timestamps (milliseconds) until the event is tracked.
type TimingEvents struct {
	sdk    SDK
	mutex  sync.Mutex
	events map[string]timingEvent
}

func NewTimingEvents(sdk SDK) *TimingEvents {
	return &TimingEvents{
		sdk:    sdk,
		events: make(map[string]timingEvent),
	}
}

// NewTimingEventIdentifier returns a random identifier suitable for Start.
func NewTimingEventIdentifier() string {
	return uuid.New().String()
}

// Start asks the SDK for a new timing handle and stores it under identifier.
// Starting an identifier that is already in flight replaces the old entry.
func (t *TimingEvents) Start(identifier string, startTimestamp int64, category, name string) {
	handle := t.sdk.StartTimingEvent(category, name)

	t.mutex.Lock()
	if _, exists := t.events[identifier]; exists {
		util.Debugf("Timing event %s restarted, discarding previous start", identifier)
	}
	t.events[identifier] = timingEvent{handle: handle, startTimestamp: startTimestamp}
	t.mutex.Unlock()
}

// Track removes the entry for identifier and records its duration with the
// SDK. Unknown identifiers are ignored. It reports whether an entry was found.
func (t *TimingEvents) Track(identifier string, endTimestamp int64, tags api.Tags) bool {
	t.mutex.Lock()
	event, ok := t.events[identifier]
	if ok {
		delete(t.events, identifier)
	}
	t.mutex.Unlock()

	if !ok {
		util.Debugf("No timing event started for %s, ignoring", identifier)
		return false
	}

	t.sdk.TrackTimingEvent(event.handle, elapsed(event.startTimestamp, endTimestamp), tags)
	return true
}

// Len returns the number of timing events in flight.
func (t *TimingEvents) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.events)
}

const maxElapsedMillis = math.MaxInt64 / int64(time.Millisecond)

// elapsed is order independent: start and end may come from call sites
// whose clocks disagree. Spans too long for a Duration saturate.
func elapsed(start, end int64) time.Duration {
	if start > end {
		start, end = end, start
	}
	diff := end - start
	if diff < 0 || diff > maxElapsedMillis {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(diff) * time.Millisecond
}
