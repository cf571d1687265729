package tpa

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

// ConsoleSDK is an SDK that writes every call to the logger. It stands in
// for the vendor library when running the bridge host on a workstation.
type ConsoleSDK struct {
	timingEventCount int64
}

type consoleTimingEvent struct {
	id       int64
	category string
	name     string
}

func (c *ConsoleSDK) Initialize(config api.Configuration) error {
	util.Infof("Initialize url=%s project=%s crashHandling=%s loggingDestination=%s feedbackInvocation=%s updateNotification=%s analytics=%t",
		config.URL, config.ProjectUUID, config.CrashHandling, config.LoggingDestination,
		config.FeedbackInvocation, config.UpdateNotification, config.AnalyticsEnabled)
	return nil
}

func (c *ConsoleSDK) TrackScreenAppearing(title string, tags api.Tags) {
	util.Infof("Screen appearing %q%s", title, formatTags(tags))
}

func (c *ConsoleSDK) TrackScreenDisappearing(title string, tags api.Tags) {
	util.Infof("Screen disappearing %q%s", title, formatTags(tags))
}

func (c *ConsoleSDK) TrackEvent(category, name string, tags api.Tags) {
	util.Infof("Event %s/%s%s", category, name, formatTags(tags))
}

func (c *ConsoleSDK) StartTimingEvent(category, name string) TimingEvent {
	return &consoleTimingEvent{
		id:       atomic.AddInt64(&c.timingEventCount, 1),
		category: category,
		name:     name,
	}
}

func (c *ConsoleSDK) TrackTimingEvent(event TimingEvent, duration time.Duration, tags api.Tags) {
	e, ok := event.(*consoleTimingEvent)
	if !ok {
		util.Warnf("Timing event %v was not started by this SDK", event)
		return
	}
	util.Infof("Timing event #%d %s/%s took %dms%s", e.id, e.category, e.name, duration.Milliseconds(), formatTags(tags))
}

func (c *ConsoleSDK) ReportNonFatalIssue(issue api.NonFatalIssue) {
	util.Warnf("Non-fatal issue from %s: %s\n%s", issue.Platform, issue.Reason, issue.StackTrace)
}

func (c *ConsoleSDK) StartFeedback() {
	util.Infof("Feedback requested")
}

func (c *ConsoleSDK) Log(level api.LogLevel, message string) {
	switch level {
	case api.LogLevelError:
		util.Errorf("%s", message)
	case api.LogLevelWarning:
		util.Warnf("%s", message)
	case api.LogLevelInfo:
		util.Infof("%s", message)
	default:
		util.Debugf("%s", message)
	}
}

func (c *ConsoleSDK) CheckForUpdates(activity Activity) {
	util.Infof("Checking for updates from %v", activity)
}

func (c *ConsoleSDK) InitLifecycle(activity Activity) {
	util.Debugf("Lifecycle attached to %v", activity)
}

func formatTags(tags api.Tags) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(" {")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%q", k, tags[k])
	}
	sb.WriteString("}")
	return sb.String()
}
