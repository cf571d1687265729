package api

// Configuration keys accepted in the untyped configuration blob passed to
// initialize.
const (
	ConfigKey_CrashHandling           = "crashHandling"
	ConfigKey_LoggingDestination      = "loggingDestination"
	ConfigKey_LogType                 = "logType"
	ConfigKey_MinimumLogLevelConsole  = "minimumLogLevelConsole"
	ConfigKey_MinimumLogLevelRemote   = "minimumLogLevelRemote"
	ConfigKey_FeedbackInvocation      = "feedbackInvocation"
	ConfigKey_IsAnalyticsEnabled      = "isAnalyticsEnabled"
	ConfigKey_TpaDebugLog             = "tpaDebugLog"
	ConfigKey_IsNonFatalIssuesEnabled = "isNonFatalIssuesEnabled"
	ConfigKey_UpdateNotification      = "updateNotification"
)

// CrashHandling determines how fatal crashes are reported.
type CrashHandling int

const (
	CrashHandlingDisabled CrashHandling = iota
	CrashHandlingAlwaysAsk
	CrashHandlingAlwaysSend
)

const DefaultCrashHandling = CrashHandlingDisabled

var crashHandlingValues = map[string]CrashHandling{
	"disabled":   CrashHandlingDisabled,
	"alwaysAsk":  CrashHandlingAlwaysAsk,
	"alwaysSend": CrashHandlingAlwaysSend,
}

// ParseCrashHandling returns DefaultCrashHandling for unrecognized values.
func ParseCrashHandling(s string) CrashHandling {
	if v, ok := crashHandlingValues[s]; ok {
		return v
	}
	return DefaultCrashHandling
}

func (c CrashHandling) String() string {
	switch c {
	case CrashHandlingAlwaysAsk:
		return "alwaysAsk"
	case CrashHandlingAlwaysSend:
		return "alwaysSend"
	default:
		return "disabled"
	}
}

// LoggingDestination determines where log lines written through the SDK end up.
type LoggingDestination int

const (
	LoggingDestinationNone LoggingDestination = iota
	LoggingDestinationConsole
	LoggingDestinationRemote
	LoggingDestinationBoth
)

const DefaultLoggingDestination = LoggingDestinationConsole

var loggingDestinationValues = map[string]LoggingDestination{
	"none":    LoggingDestinationNone,
	"console": LoggingDestinationConsole,
	"remote":  LoggingDestinationRemote,
	"both":    LoggingDestinationBoth,
}

// ParseLoggingDestination returns DefaultLoggingDestination for unrecognized values.
func ParseLoggingDestination(s string) LoggingDestination {
	if v, ok := loggingDestinationValues[s]; ok {
		return v
	}
	return DefaultLoggingDestination
}

func (d LoggingDestination) String() string {
	switch d {
	case LoggingDestinationNone:
		return "none"
	case LoggingDestinationRemote:
		return "remote"
	case LoggingDestinationBoth:
		return "both"
	default:
		return "console"
	}
}

// Console reports whether log lines are written to the device console.
func (d LoggingDestination) Console() bool {
	return d == LoggingDestinationConsole || d == LoggingDestinationBoth
}

// Remote reports whether log lines are sent to the TPA server.
func (d LoggingDestination) Remote() bool {
	return d == LoggingDestinationRemote || d == LoggingDestinationBoth
}

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

const DefaultLogLevel = LogLevelDebug

var logLevelValues = map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warning": LogLevelWarning,
	"error":   LogLevelError,
}

// ParseLogLevel returns DefaultLogLevel for unrecognized values.
func ParseLogLevel(s string) LogLevel {
	level, _ := LookupLogLevel(s)
	return level
}

// LookupLogLevel is ParseLogLevel that also reports whether s was recognized.
func LookupLogLevel(s string) (LogLevel, bool) {
	if v, ok := logLevelValues[s]; ok {
		return v, true
	}
	return DefaultLogLevel, false
}

func (l LogLevel) String() string {
	switch l {
	case LogLevelInfo:
		return "info"
	case LogLevelWarning:
		return "warning"
	case LogLevelError:
		return "error"
	default:
		return "debug"
	}
}

// FeedbackInvocation determines how the feedback UI may be opened.
type FeedbackInvocation int

const (
	FeedbackInvocationDisabled FeedbackInvocation = iota
	FeedbackInvocationEnabled
	FeedbackInvocationEventShake
)

const DefaultFeedbackInvocation = FeedbackInvocationDisabled

var feedbackInvocationValues = map[string]FeedbackInvocation{
	"disabled": FeedbackInvocationDisabled,
	"enabled":  FeedbackInvocationEnabled,
	"shake":    FeedbackInvocationEventShake,
}

// ParseFeedbackInvocation returns DefaultFeedbackInvocation for unrecognized values.
func ParseFeedbackInvocation(s string) FeedbackInvocation {
	if v, ok := feedbackInvocationValues[s]; ok {
		return v
	}
	return DefaultFeedbackInvocation
}

func (f FeedbackInvocation) String() string {
	switch f {
	case FeedbackInvocationEnabled:
		return "enabled"
	case FeedbackInvocationEventShake:
		return "shake"
	default:
		return "disabled"
	}
}

// UpdateNotification determines how the user is told about new builds.
type UpdateNotification int

const (
	UpdateNotificationDisabled UpdateNotification = iota
	UpdateNotificationManually
	UpdateNotificationAutomatic
)

const DefaultUpdateNotification = UpdateNotificationDisabled

var updateNotificationValues = map[string]UpdateNotification{
	"disabled":  UpdateNotificationDisabled,
	"manually":  UpdateNotificationManually,
	"enabled":   UpdateNotificationManually,
	"automatic": UpdateNotificationAutomatic,
}

// ParseUpdateNotification returns DefaultUpdateNotification for unrecognized values.
func ParseUpdateNotification(s string) UpdateNotification {
	if v, ok := updateNotificationValues[s]; ok {
		return v
	}
	return DefaultUpdateNotification
}

func (u UpdateNotification) String() string {
	switch u {
	case UpdateNotificationManually:
		return "manually"
	case UpdateNotificationAutomatic:
		return "automatic"
	default:
		return "disabled"
	}
}

// Configuration is the immutable SDK configuration built once by initialize.
type Configuration struct {
	URL                    string             `json:"url" validate:"required"`
	ProjectUUID            string             `json:"projectUuid" validate:"required"`
	CrashHandling          CrashHandling      `json:"crashHandling"`
	LoggingDestination     LoggingDestination `json:"loggingDestination"`
	MinimumLogLevelConsole LogLevel           `json:"minimumLogLevelConsole"`
	MinimumLogLevelRemote  LogLevel           `json:"minimumLogLevelRemote"`
	FeedbackInvocation     FeedbackInvocation `json:"feedbackInvocation"`
	AnalyticsEnabled       bool               `json:"isAnalyticsEnabled"`
	DebugLog               bool               `json:"tpaDebugLog"`
	NonFatalIssuesEnabled  bool               `json:"isNonFatalIssuesEnabled"`
	UpdateNotification     UpdateNotification `json:"updateNotification"`
}

// DefaultConfiguration returns the configuration used when no blob keys are given.
func DefaultConfiguration(url, projectUUID string) Configuration {
	return Configuration{
		URL:                    url,
		ProjectUUID:            projectUUID,
		CrashHandling:          DefaultCrashHandling,
		LoggingDestination:     DefaultLoggingDestination,
		MinimumLogLevelConsole: DefaultLogLevel,
		MinimumLogLevelRemote:  DefaultLogLevel,
		FeedbackInvocation:     DefaultFeedbackInvocation,
		AnalyticsEnabled:       true,
		DebugLog:               false,
		NonFatalIssuesEnabled:  false,
		UpdateNotification:     DefaultUpdateNotification,
	}
}

// AutomaticUpdateCheck reports whether the SDK should look for updates on its own.
func (c Configuration) AutomaticUpdateCheck() bool {
	return c.UpdateNotification == UpdateNotificationAutomatic
}
