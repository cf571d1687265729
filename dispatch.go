package tpa

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

var ErrUnknownMethod = errors.New("unknown bridge method")

type methodFunc func(b *Bridge, call *api.Call) (*structpb.Value, error)

// Dispatcher routes framework calls by method name to the Bridge. Arguments
// are coerced leniently: a missing or mistyped argument becomes its zero
// value instead of failing the call.
type Dispatcher struct {
	bridge  *Bridge
	methods map[string]methodFunc
}

func NewDispatcher(b *Bridge) *Dispatcher {
	return &Dispatcher{
		bridge: b,
		methods: map[string]methodFunc{
			api.Method_Initialize:                      initialize,
			api.Method_TrackScreenAppearing:            trackScreenAppearing,
			api.Method_TrackScreenAppearingWithTags:    trackScreenAppearing,
			api.Method_TrackScreenDisappearing:         trackScreenDisappearing,
			api.Method_TrackScreenDisappearingWithTags: trackScreenDisappearing,
			api.Method_TrackEvent:                      trackEvent,
			api.Method_TrackEventWithTags:              trackEvent,
			api.Method_GetNewTimingEventIdentifier:     getNewTimingEventIdentifier,
			api.Method_StartTimingEvent:                startTimingEvent,
			api.Method_TrackTimingEvent:                trackTimingEvent,
			api.Method_TrackTimingEventWithTags:        trackTimingEvent,
			api.Method_ReportNonFatalIssue:             reportNonFatalIssue,
			api.Method_StartFeedback:                   startFeedback,
			api.Method_InvokeFeedback:                  startFeedback,
			api.Method_Log:                             logMessage,
			api.Method_LogDebug:                        logDebug,
			api.Method_CheckForUpdate:                  checkForUpdate,
		},
	}
}

// Dispatch executes call. The result is null for methods that return nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, call *api.Call) (*structpb.Value, error) {
	if call == nil {
		return nil, fmt.Errorf("%w: empty call", ErrUnknownMethod)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	method, ok := d.methods[call.Method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, call.Method)
	}
	util.Debugf("Dispatching %s with %d arguments", call.Method, call.NumArgs())
	result, err := method(d.bridge, call)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = structpb.NewNullValue()
	}
	return result, nil
}

// Methods returns the supported method names in sorted order.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.methods))
	for name := range d.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func initialize(b *Bridge, call *api.Call) (*structpb.Value, error) {
	return nil, b.Initialize(stringArg(call, 0), stringArg(call, 1), structArg(call, 2))
}

func trackScreenAppearing(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.TrackScreenAppearing(stringArg(call, 0), structArg(call, 1))
	return nil, nil
}

func trackScreenDisappearing(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.TrackScreenDisappearing(stringArg(call, 0), structArg(call, 1))
	return nil, nil
}

func trackEvent(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.TrackEvent(stringArg(call, 0), stringArg(call, 1), structArg(call, 2))
	return nil, nil
}

func getNewTimingEventIdentifier(b *Bridge, _ *api.Call) (*structpb.Value, error) {
	return structpb.NewStringValue(b.NewTimingEventIdentifier()), nil
}

func startTimingEvent(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.StartTimingEvent(stringArg(call, 0), timestampArg(call, 1), stringArg(call, 2), stringArg(call, 3))
	return nil, nil
}

func trackTimingEvent(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.TrackTimingEvent(stringArg(call, 0), timestampArg(call, 1), structArg(call, 2))
	return nil, nil
}

func reportNonFatalIssue(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.ReportNonFatalIssue(stringArg(call, 0), stringArg(call, 1), structArg(call, 2))
	return nil, nil
}

func startFeedback(b *Bridge, _ *api.Call) (*structpb.Value, error) {
	b.StartFeedback()
	return nil, nil
}

func logMessage(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.Log(stringArg(call, 0), stringArg(call, 1))
	return nil, nil
}

func logDebug(b *Bridge, call *api.Call) (*structpb.Value, error) {
	b.LogDebug(stringArg(call, 0))
	return nil, nil
}

func checkForUpdate(b *Bridge, _ *api.Call) (*structpb.Value, error) {
	b.CheckForUpdate()
	return nil, nil
}

func stringArg(call *api.Call, i int) string {
	s, ok := call.Arg(i).GetKind().(*structpb.Value_StringValue)
	if !ok {
		return ""
	}
	return s.StringValue
}

func structArg(call *api.Call, i int) *structpb.Struct {
	s, ok := call.Arg(i).GetKind().(*structpb.Value_StructValue)
	if !ok {
		return nil
	}
	return s.StructValue
}

// timestampArg reads a millisecond timestamp. Framework numbers are doubles,
// fractions are truncated and values outside the int64 range are clamped.
func timestampArg(call *api.Call, i int) int64 {
	n, ok := call.Arg(i).GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(n.NumberValue) {
		return 0
	}
	switch v := n.NumberValue; {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(v)
	}
}
