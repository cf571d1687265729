package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnums_FallBackToDefaults(t *testing.T) {
	assert.Equal(t, CrashHandlingAlwaysAsk, ParseCrashHandling("alwaysAsk"))
	assert.Equal(t, CrashHandlingAlwaysSend, ParseCrashHandling("alwaysSend"))
	assert.Equal(t, DefaultCrashHandling, ParseCrashHandling("bogus"))
	assert.Equal(t, DefaultCrashHandling, ParseCrashHandling(""))

	assert.Equal(t, LoggingDestinationBoth, ParseLoggingDestination("both"))
	assert.Equal(t, LoggingDestinationConsole, ParseLoggingDestination("nowhere"))

	assert.Equal(t, LogLevelWarning, ParseLogLevel("warning"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("WARNING"))
	_, ok := LookupLogLevel("verbose")
	assert.False(t, ok)

	assert.Equal(t, FeedbackInvocationEventShake, ParseFeedbackInvocation("shake"))
	assert.Equal(t, FeedbackInvocationDisabled, ParseFeedbackInvocation("sometimes"))

	assert.Equal(t, UpdateNotificationManually, ParseUpdateNotification("enabled"))
	assert.Equal(t, UpdateNotificationManually, ParseUpdateNotification("manually"))
	assert.Equal(t, UpdateNotificationAutomatic, ParseUpdateNotification("automatic"))
	assert.Equal(t, UpdateNotificationDisabled, ParseUpdateNotification("weekly"))
}

func TestEnumStrings_RoundTrip(t *testing.T) {
	for s := range crashHandlingValues {
		assert.Equal(t, s, ParseCrashHandling(s).String())
	}
	for s := range loggingDestinationValues {
		assert.Equal(t, s, ParseLoggingDestination(s).String())
	}
	for s := range logLevelValues {
		assert.Equal(t, s, ParseLogLevel(s).String())
	}
	for s := range feedbackInvocationValues {
		assert.Equal(t, s, ParseFeedbackInvocation(s).String())
	}
	assert.Equal(t, "manually", ParseUpdateNotification("enabled").String())
}

func TestLoggingDestination_Targets(t *testing.T) {
	assert.True(t, LoggingDestinationBoth.Console())
	assert.True(t, LoggingDestinationBoth.Remote())
	assert.False(t, LoggingDestinationNone.Console())
	assert.False(t, LoggingDestinationConsole.Remote())
}

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration("https://tpa.example.com/", "project")
	assert.Equal(t, CrashHandlingDisabled, cfg.CrashHandling)
	assert.Equal(t, LoggingDestinationConsole, cfg.LoggingDestination)
	assert.True(t, cfg.AnalyticsEnabled)
	assert.False(t, cfg.DebugLog)
	assert.False(t, cfg.AutomaticUpdateCheck())
}

func TestTags_Copy(t *testing.T) {
	var nilTags Tags
	assert.Nil(t, nilTags.Copy())

	tags := Tags{"a": "1"}
	copied := tags.Copy()
	copied["a"] = "2"
	assert.Equal(t, "1", tags["a"])
}
