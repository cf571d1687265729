package tpa

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

// Bridge translates host framework calls into SDK calls.
// In most cases there should be only one, shared, Bridge per SDK instance.
type Bridge struct {
	sdk           SDK
	options       *Options
	hookRunner    *CallHookRunner
	platformData  *api.PlatformData
	mutex         sync.RWMutex
	configuration *api.Configuration
	timingEvents  *TimingEvents
	isInitialized bool
	hostDebug     bool
}

func NewBridge(sdk SDK, options *Options) (*Bridge, error) {
	if sdk == nil {
		return nil, ErrMissingSDK
	}
	if options == nil {
		options = &Options{}
	}
	options.CheckDefaults()
	if options.Logger != nil {
		util.SetLogger(options.Logger)
	}

	if options.Debug {
		util.SetDebug(true)
	}

	return &Bridge{
		sdk:          sdk,
		options:      options,
		hookRunner:   NewCallHookRunner(options.CallHooks),
		platformData: (&api.PlatformData{}).Default(VERSION, options.Platform),
		hostDebug:    options.Debug,
	}, nil
}

// Initialize parses the configuration blob and starts the SDK. Calls made
// before a successful Initialize are ignored. Initializing again replaces the
// configuration and discards timing events in flight.
func (b *Bridge) Initialize(url, projectUUID string, configuration *structpb.Struct) error {
	cfg, err := ParseConfiguration(url, projectUUID, configuration)
	if err != nil {
		util.Warnf("TPA not initialized: %v", err)
		b.emit(api.ClientEvent{EventType: api.ClientEventType_Error, Status: "configuration", Error: err})
		return err
	}

	b.mutex.RLock()
	util.SetDebug(cfg.DebugLog || b.hostDebug)
	b.mutex.RUnlock()
	if err = b.sdk.Initialize(*cfg); err != nil {
		util.Warnf("TPA SDK failed to initialize: %v", err)
		b.emit(api.ClientEvent{EventType: api.ClientEventType_Error, Status: "sdk", Error: err})
		return fmt.Errorf("TPA SDK failed to initialize: %w", err)
	}

	b.mutex.Lock()
	b.configuration = cfg
	b.timingEvents = NewTimingEvents(b.sdk)
	b.isInitialized = true
	b.mutex.Unlock()

	// The SDK lifecycle tracking may have missed the first foreground
	// callback if the activity resumed before initialization.
	if activity := b.currentActivity(); activity != nil {
		b.sdk.InitLifecycle(activity)
	}

	util.Debugf("TPA %s bridge initialized for project %s (%s)", b.platformData.SdkVersion, cfg.ProjectUUID, b.platformData.Platform)
	b.emit(api.ClientEvent{EventType: api.ClientEventType_Initialized, EventData: *cfg, Status: "success"})
	return nil
}

func (b *Bridge) IsInitialized() bool {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.isInitialized
}

// Configuration returns a copy of the active configuration or nil before
// Initialize.
func (b *Bridge) Configuration() *api.Configuration {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	if b.configuration == nil {
		return nil
	}
	cfg := *b.configuration
	return &cfg
}

// SetHostDebug changes the host debug override. Debug output stays on while
// either the host or the active tpaDebugLog asks for it.
func (b *Bridge) SetHostDebug(enabled bool) {
	b.mutex.Lock()
	b.hostDebug = enabled
	debug := enabled || (b.configuration != nil && b.configuration.DebugLog)
	b.mutex.Unlock()
	util.SetDebug(debug)
}

// PlatformData describes this bridge build.
func (b *Bridge) PlatformData() api.PlatformData {
	return *b.platformData
}

func (b *Bridge) TrackScreenAppearing(title string, tags *structpb.Struct) {
	b.TrackScreenAppearingWithTags(title, DeconstructTags(tags))
}

func (b *Bridge) TrackScreenAppearingWithTags(title string, tags api.Tags) {
	if !b.ready(api.Method_TrackScreenAppearing) {
		return
	}
	b.hookRunner.Run(&CallContext{Method: api.Method_TrackScreenAppearing, Title: title, Tags: tags}, func(c *CallContext) {
		b.sdk.TrackScreenAppearing(c.Title, c.Tags)
	})
}

func (b *Bridge) TrackScreenDisappearing(title string, tags *structpb.Struct) {
	b.TrackScreenDisappearingWithTags(title, DeconstructTags(tags))
}

func (b *Bridge) TrackScreenDisappearingWithTags(title string, tags api.Tags) {
	if !b.ready(api.Method_TrackScreenDisappearing) {
		return
	}
	b.hookRunner.Run(&CallContext{Method: api.Method_TrackScreenDisappearing, Title: title, Tags: tags}, func(c *CallContext) {
		b.sdk.TrackScreenDisappearing(c.Title, c.Tags)
	})
}

func (b *Bridge) TrackEvent(category, name string, tags *structpb.Struct) {
	b.TrackEventWithTags(category, name, DeconstructTags(tags))
}

func (b *Bridge) TrackEventWithTags(category, name string, tags api.Tags) {
	if !b.ready(api.Method_TrackEvent) {
		return
	}
	b.hookRunner.Run(&CallContext{Method: api.Method_TrackEvent, Category: category, Name: name, Tags: tags}, func(c *CallContext) {
		b.sdk.TrackEvent(c.Category, c.Name, c.Tags)
	})
}

// NewTimingEventIdentifier is available before Initialize.
func (b *Bridge) NewTimingEventIdentifier() string {
	return NewTimingEventIdentifier()
}

// StartTimingEvent starts measuring under identifier. startTimestamp is in
// milliseconds.
func (b *Bridge) StartTimingEvent(identifier string, startTimestamp int64, category, name string) {
	timingEvents := b.timingTable(api.Method_StartTimingEvent)
	if timingEvents == nil {
		return
	}
	timingEvents.Start(identifier, startTimestamp, category, name)
}

// TrackTimingEvent finishes the timing event started under identifier.
// endTimestamp is in milliseconds.
func (b *Bridge) TrackTimingEvent(identifier string, endTimestamp int64, tags *structpb.Struct) {
	b.TrackTimingEventWithTags(identifier, endTimestamp, DeconstructTags(tags))
}

func (b *Bridge) TrackTimingEventWithTags(identifier string, endTimestamp int64, tags api.Tags) {
	timingEvents := b.timingTable(api.Method_TrackTimingEvent)
	if timingEvents == nil {
		return
	}
	b.hookRunner.Run(&CallContext{Method: api.Method_TrackTimingEvent, Identifier: identifier, Tags: tags}, func(c *CallContext) {
		timingEvents.Track(c.Identifier, endTimestamp, c.Tags)
	})
}

// InFlightTimingEvents returns the number of started but not yet tracked
// timing events.
func (b *Bridge) InFlightTimingEvents() int {
	timingEvents := b.timingTable("")
	if timingEvents == nil {
		return 0
	}
	return timingEvents.Len()
}

func (b *Bridge) ReportNonFatalIssue(stackTrace, reason string, userInfo *structpb.Struct) {
	b.ReportNonFatalIssueWithUserInfo(stackTrace, reason, DeconstructMap(userInfo))
}

func (b *Bridge) ReportNonFatalIssueWithUserInfo(stackTrace, reason string, userInfo map[string]interface{}) {
	if !b.ready(api.Method_ReportNonFatalIssue) {
		return
	}
	b.sdk.ReportNonFatalIssue(api.NonFatalIssue{
		StackTrace: stackTrace,
		Reason:     reason,
		UserInfo:   userInfo,
		Platform:   b.options.Platform,
	})
}

// StartFeedback opens the feedback UI. It does nothing while feedback
// invocation is disabled.
func (b *Bridge) StartFeedback() {
	if !b.ready(api.Method_StartFeedback) {
		return
	}
	if cfg := b.Configuration(); cfg.FeedbackInvocation == api.FeedbackInvocationDisabled {
		util.Debugf("Feedback invocation is disabled, ignoring %s", api.Method_StartFeedback)
		return
	}
	b.sdk.StartFeedback()
}

func (b *Bridge) InvokeFeedback() {
	b.StartFeedback()
}

// Log writes message at the named level ("debug", "info", "warning" or
// "error"). Unknown levels are ignored.
func (b *Bridge) Log(level, message string) {
	logLevel, ok := api.LookupLogLevel(level)
	if !ok {
		util.Debugf("Unknown log level %q, dropping message", level)
		return
	}
	if !b.ready(api.Method_Log) {
		return
	}
	b.sdk.Log(logLevel, message)
}

func (b *Bridge) LogDebug(message string) {
	b.Log(api.LogLevelDebug.String(), message)
}

// CheckForUpdate asks the SDK to look for a newer build. It needs a
// foreground activity and an update notification mode other than disabled.
func (b *Bridge) CheckForUpdate() {
	if !b.ready(api.Method_CheckForUpdate) {
		return
	}
	if cfg := b.Configuration(); cfg.UpdateNotification == api.UpdateNotificationDisabled {
		util.Debugf("Update notifications are disabled, ignoring %s", api.Method_CheckForUpdate)
		return
	}
	activity := b.currentActivity()
	if activity == nil {
		util.Debugf("No foreground activity, ignoring %s", api.Method_CheckForUpdate)
		return
	}
	b.sdk.CheckForUpdates(activity)
}

func (b *Bridge) ready(method string) bool {
	if b.IsInitialized() {
		return true
	}
	util.Debugf("TPA is not initialized, ignoring %s", method)
	return false
}

func (b *Bridge) timingTable(method string) *TimingEvents {
	b.mutex.RLock()
	timingEvents := b.timingEvents
	b.mutex.RUnlock()
	if timingEvents == nil && method != "" {
		util.Debugf("TPA is not initialized, ignoring %s", method)
	}
	return timingEvents
}

func (b *Bridge) currentActivity() Activity {
	if b.options.Host == nil {
		return nil
	}
	return b.options.Host.CurrentActivity()
}

func (b *Bridge) emit(event api.ClientEvent) {
	if b.options.ClientEventHandler == nil {
		return
	}
	select {
	case b.options.ClientEventHandler <- event:
	default:
		util.Debugf("Client event handler is full, dropping %s event", event.EventType)
	}
}
