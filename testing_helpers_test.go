package tpa

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

const (
	test_url         = "https://tpa.example.com"
	test_projectUUID = "E4A4C1E3-23C4-4E3C-9D0A-2B8F5F6D6C11"
)

func TestMain(m *testing.M) {
	util.SetLogger(util.DiscardLogger{})
	os.Exit(m.Run())
}

type sdkCall struct {
	Method   string
	Title    string
	Category string
	Name     string
	Tags     api.Tags
	Event    TimingEvent
	Duration time.Duration
	Issue    api.NonFatalIssue
	Level    api.LogLevel
	Message  string
	Activity Activity
}

// recordingSDK records every call the bridge forwards.
type recordingSDK struct {
	mutex         sync.Mutex
	calls         []sdkCall
	configuration *api.Configuration
	initErr       error
	handles       int
}

func (s *recordingSDK) record(call sdkCall) {
	s.mutex.Lock()
	s.calls = append(s.calls, call)
	s.mutex.Unlock()
}

func (s *recordingSDK) Calls() []sdkCall {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]sdkCall(nil), s.calls...)
}

// CallsTo returns the recorded calls of one SDK method.
func (s *recordingSDK) CallsTo(method string) []sdkCall {
	var out []sdkCall
	for _, c := range s.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (s *recordingSDK) Initialize(config api.Configuration) error {
	s.record(sdkCall{Method: "Initialize"})
	if s.initErr != nil {
		return s.initErr
	}
	s.mutex.Lock()
	s.configuration = &config
	s.mutex.Unlock()
	return nil
}

func (s *recordingSDK) TrackScreenAppearing(title string, tags api.Tags) {
	s.record(sdkCall{Method: "TrackScreenAppearing", Title: title, Tags: tags})
}

func (s *recordingSDK) TrackScreenDisappearing(title string, tags api.Tags) {
	s.record(sdkCall{Method: "TrackScreenDisappearing", Title: title, Tags: tags})
}

func (s *recordingSDK) TrackEvent(category, name string, tags api.Tags) {
	s.record(sdkCall{Method: "TrackEvent", Category: category, Name: name, Tags: tags})
}

func (s *recordingSDK) StartTimingEvent(category, name string) TimingEvent {
	s.mutex.Lock()
	s.handles++
	handle := s.handles
	s.mutex.Unlock()
	s.record(sdkCall{Method: "StartTimingEvent", Category: category, Name: name, Event: handle})
	return handle
}

func (s *recordingSDK) TrackTimingEvent(event TimingEvent, duration time.Duration, tags api.Tags) {
	s.record(sdkCall{Method: "TrackTimingEvent", Event: event, Duration: duration, Tags: tags})
}

func (s *recordingSDK) ReportNonFatalIssue(issue api.NonFatalIssue) {
	s.record(sdkCall{Method: "ReportNonFatalIssue", Issue: issue})
}

func (s *recordingSDK) StartFeedback() {
	s.record(sdkCall{Method: "StartFeedback"})
}

func (s *recordingSDK) Log(level api.LogLevel, message string) {
	s.record(sdkCall{Method: "Log", Level: level, Message: message})
}

func (s *recordingSDK) CheckForUpdates(activity Activity) {
	s.record(sdkCall{Method: "CheckForUpdates", Activity: activity})
}

func (s *recordingSDK) InitLifecycle(activity Activity) {
	s.record(sdkCall{Method: "InitLifecycle", Activity: activity})
}

func newTestBridge(t *testing.T, options *Options) (*Bridge, *recordingSDK) {
	t.Helper()
	sdk := &recordingSDK{}
	bridge, err := NewBridge(sdk, options)
	require.NoError(t, err)
	return bridge, sdk
}

// newInitializedBridge returns a bridge initialized with the given
// configuration blob. Calls made by Initialize are not in the recording.
func newInitializedBridge(t *testing.T, options *Options, blob map[string]interface{}) (*Bridge, *recordingSDK) {
	t.Helper()
	bridge, sdk := newTestBridge(t, options)
	var configuration *structpb.Struct
	if blob != nil {
		configuration = NewStruct(blob)
	}
	require.NoError(t, bridge.Initialize(test_url, test_projectUUID, configuration))
	sdk.mutex.Lock()
	sdk.calls = nil
	sdk.mutex.Unlock()
	return bridge, sdk
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}
