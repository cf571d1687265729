package tpa

import (
	"context"

	"github.com/open-feature/go-sdk/pkg/openfeature"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

// OpenFeatureHook tracks every successful flag evaluation as a TPA event in
// the FeatureFlag category, named after the flag key.
type OpenFeatureHook struct {
	Bridge *Bridge
}

var _ openfeature.Hook = OpenFeatureHook{}

func NewOpenFeatureHook(b *Bridge) *OpenFeatureHook {
	return &OpenFeatureHook{Bridge: b}
}

func (h OpenFeatureHook) Before(ctx context.Context, hookContext openfeature.HookContext, hookHints openfeature.HookHints) (*openfeature.EvaluationContext, error) {
	return nil, nil
}

func (h OpenFeatureHook) After(ctx context.Context, hookContext openfeature.HookContext, details openfeature.InterfaceEvaluationDetails, hookHints openfeature.HookHints) error {
	if h.Bridge == nil {
		return nil
	}
	tags := api.Tags{
		api.EventTag_FlagVariant: details.Variant,
		api.EventTag_FlagReason:  string(details.Reason),
	}
	if value, ok := TagString(details.Value); ok {
		tags[api.EventTag_FlagValue] = value
	}
	h.Bridge.TrackEventWithTags(api.EventCategory_FeatureFlag, hookContext.FlagKey(), tags)
	return nil
}

func (h OpenFeatureHook) Error(ctx context.Context, hookContext openfeature.HookContext, err error, hookHints openfeature.HookHints) {
	util.Warnf("Evaluating flag %s failed: %v", hookContext.FlagKey(), err)
}

func (h OpenFeatureHook) Finally(ctx context.Context, hookContext openfeature.HookContext, hookHints openfeature.HookHints) {
}
