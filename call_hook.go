package tpa

import "github.com/theperfectapp/tpa-bridge-go/api"

// CallContext describes a tracking call on its way to the SDK. Before hooks
// may rewrite Tags; the rewritten tags are what the SDK receives.
type CallContext struct {
	// Method is the bridge method being forwarded, e.g. api.Method_TrackEvent
	Method string
	// Title is set for screen tracking calls
	Title string
	// Category and Name are set for event calls
	Category string
	Name     string
	// Identifier is set for timing event calls
	Identifier string
	Tags       api.Tags
}

// CallHook runs around every tracking call forwarded to the SDK
type CallHook struct {
	// Before is called before the call is forwarded. Returning an error drops the call.
	Before func(context *CallContext) error
	// After is called after the call was forwarded (only if Before didn't error)
	After func(context *CallContext) error
	// OnFinally is called after the call regardless of errors
	OnFinally func(context *CallContext) error
	// Error is called when a Before hook dropped the call
	Error func(context *CallContext, callError error) error
}

// NewCallHook creates a new CallHook with the provided functions
func NewCallHook(before func(context *CallContext) error, after func(context *CallContext) error, onFinally func(context *CallContext) error, error func(context *CallContext, callError error) error) *CallHook {
	return &CallHook{
		Before:    before,
		After:     after,
		OnFinally: onFinally,
		Error:     error,
	}
}
