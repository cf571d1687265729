package tpa

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

var (
	ErrInvalidConfiguration = errors.New("invalid TPA configuration")
	ErrMissingSDK           = errors.New("an SDK implementation is required")
)

var validate = validator.New()

type Options struct {
	// Host reports the foreground activity. Without it lifecycle
	// notification and update checks are skipped.
	Host Host
	// Platform is attached to non-fatal issue reports.
	Platform           api.Platform
	// Debug keeps debug output on regardless of tpaDebugLog.
	Debug              bool
	Logger             util.Logger
	CallHooks          []*CallHook
	ClientEventHandler chan api.ClientEvent
}

func (o *Options) CheckDefaults() {
	if o.Platform == "" {
		o.Platform = api.Platform_ReactNative
	}
}

// ParseConfiguration builds the SDK configuration from the required url and
// project UUID overlaid with the recognized keys of the blob. Unknown keys,
// values of the wrong kind and unrecognized enum strings keep their defaults.
// Only a missing url or project UUID is an error; the url is passed to the
// SDK as given.
func ParseConfiguration(url, projectUUID string, blob *structpb.Struct) (*api.Configuration, error) {
	cfg := api.DefaultConfiguration(url, projectUUID)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	if blob == nil {
		return &cfg, nil
	}

	fields := blob.GetFields()
	if s, ok := stringField(fields, api.ConfigKey_CrashHandling); ok {
		cfg.CrashHandling = api.ParseCrashHandling(s)
	}
	if s, ok := stringField(fields, api.ConfigKey_LoggingDestination); ok {
		cfg.LoggingDestination = api.ParseLoggingDestination(s)
	} else if s, ok := stringField(fields, api.ConfigKey_LogType); ok {
		cfg.LoggingDestination = api.ParseLoggingDestination(s)
	}
	if s, ok := stringField(fields, api.ConfigKey_MinimumLogLevelConsole); ok {
		cfg.MinimumLogLevelConsole = api.ParseLogLevel(s)
	}
	if s, ok := stringField(fields, api.ConfigKey_MinimumLogLevelRemote); ok {
		cfg.MinimumLogLevelRemote = api.ParseLogLevel(s)
	}
	if s, ok := stringField(fields, api.ConfigKey_FeedbackInvocation); ok {
		cfg.FeedbackInvocation = api.ParseFeedbackInvocation(s)
	}
	if b, ok := boolField(fields, api.ConfigKey_IsAnalyticsEnabled); ok {
		cfg.AnalyticsEnabled = b
	}
	if b, ok := boolField(fields, api.ConfigKey_TpaDebugLog); ok {
		cfg.DebugLog = b
	}
	if b, ok := boolField(fields, api.ConfigKey_IsNonFatalIssuesEnabled); ok {
		cfg.NonFatalIssuesEnabled = b
	}
	if s, ok := stringField(fields, api.ConfigKey_UpdateNotification); ok {
		cfg.UpdateNotification = api.ParseUpdateNotification(s)
	}
	return &cfg, nil
}

// ParseConfigurationMap is ParseConfiguration for a plain Go map.
func ParseConfigurationMap(url, projectUUID string, blob map[string]interface{}) (*api.Configuration, error) {
	if blob == nil {
		return ParseConfiguration(url, projectUUID, nil)
	}
	return ParseConfiguration(url, projectUUID, NewStruct(blob))
}

func stringField(fields map[string]*structpb.Value, key string) (string, bool) {
	v, present := fields[key]
	if !present {
		return "", false
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		util.Debugf("Configuration key %s is not a string, using default", key)
		return "", false
	}
	return s.StringValue, true
}

func boolField(fields map[string]*structpb.Value, key string) (bool, bool) {
	v, present := fields[key]
	if !present {
		return false, false
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		util.Debugf("Configuration key %s is not a boolean, using default", key)
		return false, false
	}
	return b.BoolValue, true
}
