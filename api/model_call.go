package api

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Method names understood by the dispatcher. The names match the native
// module methods exposed to the host framework.
const (
	Method_Initialize                      = "initialize"
	Method_TrackScreenAppearing            = "trackScreenAppearing"
	Method_TrackScreenAppearingWithTags    = "trackScreenAppearingWithTags"
	Method_TrackScreenDisappearing         = "trackScreenDisappearing"
	Method_TrackScreenDisappearingWithTags = "trackScreenDisappearingWithTags"
	Method_TrackEvent                      = "trackEvent"
	Method_TrackEventWithTags              = "trackEventWithTags"
	Method_GetNewTimingEventIdentifier     = "getNewTimingEventIdentifier"
	Method_StartTimingEvent                = "startTimingEvent"
	Method_TrackTimingEvent                = "trackTimingEvent"
	Method_TrackTimingEventWithTags        = "trackTimingEventWithTags"
	Method_ReportNonFatalIssue             = "reportNonFatalIssue"
	Method_StartFeedback                   = "startFeedback"
	Method_InvokeFeedback                  = "invokeFeedback"
	Method_Log                             = "log"
	Method_LogDebug                        = "logDebug"
	Method_CheckForUpdate                  = "checkForUpdate"
)

// Call is a single framework call: a method name and its positional,
// dynamically typed arguments.
type Call struct {
	Method string
	Args   *structpb.ListValue
}

type wireCall struct {
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// NewCall builds a call from plain values. Values that cannot be
// represented are sent as null.
func NewCall(method string, args ...*structpb.Value) *Call {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(args))}
	for _, arg := range args {
		if arg == nil {
			arg = structpb.NewNullValue()
		}
		list.Values = append(list.Values, arg)
	}
	return &Call{Method: method, Args: list}
}

// Arg returns the i-th argument or nil when the call has fewer arguments.
func (c *Call) Arg(i int) *structpb.Value {
	if c == nil || c.Args == nil || i < 0 || i >= len(c.Args.Values) {
		return nil
	}
	return c.Args.Values[i]
}

// NumArgs returns the number of positional arguments.
func (c *Call) NumArgs() int {
	if c == nil || c.Args == nil {
		return 0
	}
	return len(c.Args.Values)
}

func (c Call) MarshalJSON() ([]byte, error) {
	w := wireCall{Method: c.Method}
	if c.Args != nil {
		raw, err := protojson.Marshal(c.Args)
		if err != nil {
			return nil, err
		}
		w.Args = raw
	}
	return json.Marshal(w)
}

func (c *Call) UnmarshalJSON(data []byte) error {
	var w wireCall
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Method = w.Method
	c.Args = &structpb.ListValue{}
	if len(w.Args) == 0 || string(w.Args) == "null" {
		return nil
	}
	return protojson.Unmarshal(w.Args, c.Args)
}

// CallResult is the response to a Call. Result is null for calls that
// return nothing.
type CallResult struct {
	Result *structpb.Value
	Error  string
}

type wireCallResult struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (r CallResult) MarshalJSON() ([]byte, error) {
	w := wireCallResult{Error: r.Error}
	if r.Result != nil {
		raw, err := protojson.Marshal(r.Result)
		if err != nil {
			return nil, err
		}
		w.Result = raw
	}
	return json.Marshal(w)
}

func (r *CallResult) UnmarshalJSON(data []byte) error {
	var w wireCallResult
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Error = w.Error
	r.Result = nil
	if len(w.Result) == 0 {
		return nil
	}
	r.Result = &structpb.Value{}
	return protojson.Unmarshal(w.Result, r.Result)
}
