package tpa

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theperfectapp/tpa-bridge-go/api"
)

func TestTimingEvents(t *testing.T) {
	t.Run("tracks elapsed time", func(t *testing.T) {
		sdk := &recordingSDK{}
		timingEvents := NewTimingEvents(sdk)

		timingEvents.Start("id-1", 1000, "network", "fetch")
		assert.Equal(t, 1, timingEvents.Len())
		assert.True(t, timingEvents.Track("id-1", 1500, api.Tags{"status": "200"}))
		assert.Equal(t, 0, timingEvents.Len())

		started := sdk.CallsTo("StartTimingEvent")
		require.Len(t, started, 1)
		assert.Equal(t, "network", started[0].Category)
		assert.Equal(t, "fetch", started[0].Name)

		tracked := sdk.CallsTo("TrackTimingEvent")
		require.Len(t, tracked, 1)
		assert.Equal(t, started[0].Event, tracked[0].Event)
		assert.Equal(t, 500*time.Millisecond, tracked[0].Duration)
		assert.Equal(t, api.Tags{"status": "200"}, tracked[0].Tags)
	})

	t.Run("end before start uses the absolute difference", func(t *testing.T) {
		sdk := &recordingSDK{}
		timingEvents := NewTimingEvents(sdk)

		timingEvents.Start("id-1", 1000, "c", "n")
		timingEvents.Track("id-1", 500, nil)

		tracked := sdk.CallsTo("TrackTimingEvent")
		require.Len(t, tracked, 1)
		assert.Equal(t, 500*time.Millisecond, tracked[0].Duration)
		assert.Nil(t, tracked[0].Tags)
	})

	t.Run("unknown identifier is ignored", func(t *testing.T) {
		sdk := &recordingSDK{}
		timingEvents := NewTimingEvents(sdk)

		assert.False(t, timingEvents.Track("nope", 10, nil))
		assert.Empty(t, sdk.Calls())
	})

	t.Run("tracking twice only forwards once", func(t *testing.T) {
		sdk := &recordingSDK{}
		timingEvents := NewTimingEvents(sdk)

		timingEvents.Start("id-1", 0, "c", "n")
		assert.True(t, timingEvents.Track("id-1", 10, nil))
		assert.False(t, timingEvents.Track("id-1", 20, nil))
		assert.Len(t, sdk.CallsTo("TrackTimingEvent"), 1)
	})

	t.Run("restart replaces the earlier start", func(t *testing.T) {
		sdk := &recordingSDK{}
		timingEvents := NewTimingEvents(sdk)

		timingEvents.Start("id-1", 100, "c", "first")
		timingEvents.Start("id-1", 400, "c", "second")
		assert.Equal(t, 1, timingEvents.Len())
		timingEvents.Track("id-1", 1000, nil)

		started := sdk.CallsTo("StartTimingEvent")
		require.Len(t, started, 2)
		tracked := sdk.CallsTo("TrackTimingEvent")
		require.Len(t, tracked, 1)
		assert.Equal(t, started[1].Event, tracked[0].Event)
		assert.Equal(t, 600*time.Millisecond, tracked[0].Duration)
	})

	t.Run("concurrent identifiers", func(t *testing.T) {
		sdk := &recordingSDK{}
		timingEvents := NewTimingEvents(sdk)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(start int64) {
				defer wg.Done()
				id := NewTimingEventIdentifier()
				timingEvents.Start(id, start, "c", "n")
				timingEvents.Track(id, start+25, nil)
			}(int64(i))
		}
		wg.Wait()

		assert.Equal(t, 0, timingEvents.Len())
		tracked := sdk.CallsTo("TrackTimingEvent")
		require.Len(t, tracked, 50)
		for _, c := range tracked {
			assert.Equal(t, 25*time.Millisecond, c.Duration)
		}
	})
}

func TestNewTimingEventIdentifier(t *testing.T) {
	a := NewTimingEventIdentifier()
	b := NewTimingEventIdentifier()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestElapsed(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, elapsed(1000, 1500))
	assert.Equal(t, 500*time.Millisecond, elapsed(1500, 1000))
	assert.Equal(t, time.Duration(maxElapsedMillis)*time.Millisecond, elapsed(0, maxElapsedMillis))
	assert.Equal(t, time.Duration(math.MaxInt64), elapsed(0, maxElapsedMillis+1))
	assert.Equal(t, time.Duration(math.MaxInt64), elapsed(math.MinInt64, math.MaxInt64))
	assert.Equal(t, time.Duration(math.MaxInt64), elapsed(math.MaxInt64, math.MinInt64))
}

func TestTimingEvents_ExtremeTimestamps(t *testing.T) {
	sdk := &recordingSDK{}
	timingEvents := NewTimingEvents(sdk)

	timingEvents.Start("id-1", math.MinInt64, "c", "n")
	require.True(t, timingEvents.Track("id-1", math.MaxInt64, nil))

	tracked := sdk.CallsTo("TrackTimingEvent")
	require.Len(t, tracked, 1)
	assert.Positive(t, tracked[0].Duration)
}
