package tpa

import (
	"time"

	"github.com/theperfectapp/tpa-bridge-go/api"
)

const VERSION = "1.0.0"

// TimingEvent is the opaque handle the SDK returns for an in-progress
// duration measurement.
type TimingEvent interface{}

// Activity is the host's reference to the screen currently in the foreground.
type Activity interface{}

// SDK is the analytics library the bridge forwards to. The vendor library
// provides the real implementation; ConsoleSDK can stand in for it during
// development. A nil tags argument means the call carries no tags.
type SDK interface {
	Initialize(config api.Configuration) error
	TrackScreenAppearing(title string, tags api.Tags)
	TrackScreenDisappearing(title string, tags api.Tags)
	TrackEvent(category, name string, tags api.Tags)
	StartTimingEvent(category, name string) TimingEvent
	TrackTimingEvent(event TimingEvent, duration time.Duration, tags api.Tags)
	ReportNonFatalIssue(issue api.NonFatalIssue)
	StartFeedback()
	Log(level api.LogLevel, message string)
	CheckForUpdates(activity Activity)
	// InitLifecycle tells the SDK about the foreground activity when its own
	// lifecycle callback fired before initialization.
	InitLifecycle(activity Activity)
}

// Host gives the bridge access to the host framework's UI state.
type Host interface {
	// CurrentActivity returns nil when no screen is in the foreground.
	CurrentActivity() Activity
}

// HostFunc adapts a function to the Host interface.
type HostFunc func() Activity

func (f HostFunc) CurrentActivity() Activity {
	return f()
}
