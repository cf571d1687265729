package tpa

import (
	"context"
	"errors"
	"testing"

	"github.com/open-feature/go-sdk/pkg/openfeature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theperfectapp/tpa-bridge-go/api"
)

func newTestHookContext(flagKey string, flagType openfeature.Type, defaultValue interface{}) openfeature.HookContext {
	return openfeature.NewHookContext(
		flagKey,
		flagType,
		defaultValue,
		openfeature.NewClientMetadata("tpa-test"),
		openfeature.Metadata{Name: "test-provider"},
		openfeature.NewEvaluationContext("user-1", nil),
	)
}

func TestOpenFeatureHook_After(t *testing.T) {
	bridge, sdk := newInitializedBridge(t, nil, nil)
	hook := NewOpenFeatureHook(bridge)

	details := openfeature.InterfaceEvaluationDetails{
		Value: 2.5,
		EvaluationDetails: openfeature.EvaluationDetails{
			FlagKey:  "checkout-fee",
			FlagType: openfeature.Float,
			ResolutionDetail: openfeature.ResolutionDetail{
				Variant: "high",
				Reason:  openfeature.TargetingMatchReason,
			},
		},
	}
	err := hook.After(context.Background(), newTestHookContext("checkout-fee", openfeature.Float, 1.0), details, openfeature.HookHints{})
	require.NoError(t, err)

	events := sdk.CallsTo("TrackEvent")
	require.Len(t, events, 1)
	assert.Equal(t, api.EventCategory_FeatureFlag, events[0].Category)
	assert.Equal(t, "checkout-fee", events[0].Name)
	assert.Equal(t, api.Tags{
		api.EventTag_FlagVariant: "high",
		api.EventTag_FlagReason:  string(openfeature.TargetingMatchReason),
		api.EventTag_FlagValue:   "2.5",
	}, events[0].Tags)
}

func TestOpenFeatureHook_ObjectValueIsNotTagged(t *testing.T) {
	bridge, sdk := newInitializedBridge(t, nil, nil)
	hook := NewOpenFeatureHook(bridge)

	details := openfeature.InterfaceEvaluationDetails{Value: map[string]interface{}{"a": 1}}
	require.NoError(t, hook.After(context.Background(), newTestHookContext("layout", openfeature.Object, nil), details, openfeature.HookHints{}))

	events := sdk.CallsTo("TrackEvent")
	require.Len(t, events, 1)
	assert.NotContains(t, events[0].Tags, api.EventTag_FlagValue)
}

func TestOpenFeatureHook_NoTrackingBeforeInitialize(t *testing.T) {
	bridge, sdk := newTestBridge(t, nil)
	hook := NewOpenFeatureHook(bridge)
	hookContext := newTestHookContext("flag", openfeature.Boolean, false)

	evalCtx, err := hook.Before(context.Background(), hookContext, openfeature.HookHints{})
	assert.NoError(t, err)
	assert.Nil(t, evalCtx)

	assert.NoError(t, hook.After(context.Background(), hookContext, openfeature.InterfaceEvaluationDetails{Value: true}, openfeature.HookHints{}))
	hook.Error(context.Background(), hookContext, errors.New("provider down"), openfeature.HookHints{})
	hook.Finally(context.Background(), hookContext, openfeature.HookHints{})

	assert.Empty(t, sdk.Calls())
}
