// Package client drives a remote bridge host over HTTP with the same surface
// the framework facade offers to application code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/try"
	"google.golang.org/protobuf/types/known/structpb"

	tpa "github.com/theperfectapp/tpa-bridge-go"
	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

var ErrInvalidBaseURL = errors.New("base URL must be an absolute http(s) URL")

type Options struct {
	// HTTPClient defaults to a client using http.DefaultTransport.
	HTTPClient *http.Client
	// RequestTimeout bounds a single attempt.
	RequestTimeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// RetryBaseDelay scales the exponential backoff between attempts.
	RetryBaseDelay time.Duration
	// Now supplies timing event timestamps.
	Now func() time.Time
}

func (o *Options) CheckDefaults() {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 5 * time.Second
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 5
	}
	if o.MaxRetries >= try.MaxRetries {
		o.MaxRetries = try.MaxRetries - 1
	}
	if o.RetryBaseDelay <= 0 {
		o.RetryBaseDelay = 100 * time.Millisecond
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// CallError is returned when the host rejected a call. It is not retried.
type CallError struct {
	StatusCode int
	Method     string
	Message    string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Method, e.StatusCode, e.Message)
}

type Client struct {
	callURL string
	options *Options
	debug   atomic.Bool
}

func NewClient(baseURL string, options *Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if options == nil {
		options = &Options{}
	}
	options.CheckDefaults()

	return &Client{
		callURL: strings.TrimSuffix(u.String(), "/") + "/v1/call",
		options: options,
	}, nil
}

// Call sends a raw call. Arguments are converted with tpa.NewValue.
func (c *Client) Call(ctx context.Context, method string, args ...interface{}) (*structpb.Value, error) {
	values := make([]*structpb.Value, len(args))
	for i, arg := range args {
		values[i] = tpa.NewValue(arg)
	}
	body, err := json.Marshal(api.NewCall(method, values...))
	if err != nil {
		return nil, err
	}

	var result api.CallResult
	// This retrying lib works by retrying as long as the bool is true and err is not nil
	// the attempt param is auto-incremented
	err = try.Do(func(attempt int) (bool, error) {
		status, responseBody, err := c.post(ctx, body)
		if err == nil && status >= 500 {
			err = fmt.Errorf("%s: %d error from bridge host", method, status)
		}
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			if attempt > c.options.MaxRetries {
				return false, err
			}
			util.Debugf("Retrying %s after attempt %d: %v", method, attempt, err)
			return c.wait(ctx, attempt), err
		}

		result = api.CallResult{}
		if decodeErr := json.Unmarshal(responseBody, &result); decodeErr != nil {
			return false, fmt.Errorf("%s: decode response: %w", method, decodeErr)
		}
		if status != http.StatusOK {
			return false, &CallError{StatusCode: status, Method: method, Message: result.Error}
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if result.Result == nil {
		return structpb.NewNullValue(), nil
	}
	return result.Result, nil
}

func (c *Client) post(ctx context.Context, body []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.options.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.callURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, responseBody, nil
}

// wait sleeps before the next attempt. It reports false when ctx ended first.
func (c *Client) wait(ctx context.Context, attempt int) bool {
	delay := time.Duration(exponentialBackoff(attempt) * float64(c.options.RetryBaseDelay) / 100)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func exponentialBackoff(attempt int) float64 {
	delay := math.Pow(2, float64(attempt)) * 100
	randomSum := delay * 0.2 * rand.Float64()
	return (delay + randomSum)
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) error {
	_, err := c.Call(ctx, method, args...)
	return err
}

// DebugEnabled reports the tpaDebugLog value of the last Initialize.
func (c *Client) DebugEnabled() bool {
	return c.debug.Load()
}

// Initialize configures the SDK on the host. A nil configuration uses the
// defaults.
func (c *Client) Initialize(ctx context.Context, tpaURL, projectUUID string, configuration map[string]interface{}) error {
	if debug, ok := configuration[api.ConfigKey_TpaDebugLog].(bool); ok {
		c.debug.Store(debug)
	}
	var blob interface{}
	if configuration != nil {
		blob = configuration
	}
	return c.call(ctx, api.Method_Initialize, tpaURL, projectUUID, blob)
}

func (c *Client) TrackScreenAppearing(ctx context.Context, title string) error {
	return c.call(ctx, api.Method_TrackScreenAppearing, title)
}

// TrackScreenAppearingWithTags tracks a screen with tags. Do not put
// personal data in tags.
func (c *Client) TrackScreenAppearingWithTags(ctx context.Context, title string, tags api.Tags) error {
	return c.call(ctx, api.Method_TrackScreenAppearingWithTags, title, tags)
}

func (c *Client) TrackScreenDisappearing(ctx context.Context, title string) error {
	return c.call(ctx, api.Method_TrackScreenDisappearing, title)
}

func (c *Client) TrackScreenDisappearingWithTags(ctx context.Context, title string, tags api.Tags) error {
	return c.call(ctx, api.Method_TrackScreenDisappearingWithTags, title, tags)
}

// TrackEvent tracks an event. Events sharing a category are grouped.
func (c *Client) TrackEvent(ctx context.Context, category, name string) error {
	return c.call(ctx, api.Method_TrackEvent, category, name)
}

func (c *Client) TrackEventWithTags(ctx context.Context, category, name string, tags api.Tags) error {
	return c.call(ctx, api.Method_TrackEventWithTags, category, name, tags)
}

// StartTimingEvent starts a timing event and returns the identifier to pass
// to TrackTimingEvent.
func (c *Client) StartTimingEvent(ctx context.Context, category, name string) (string, error) {
	identifier := ""
	result, err := c.Call(ctx, api.Method_GetNewTimingEventIdentifier)
	if err == nil {
		identifier = result.GetStringValue()
	} else {
		util.Debugf("Generating timing event identifier locally: %v", err)
	}
	if identifier == "" {
		identifier = uuid.New().String()
	}

	startTimestamp := c.options.Now().UnixMilli()
	if err := c.call(ctx, api.Method_StartTimingEvent, identifier, startTimestamp, category, name); err != nil {
		return "", err
	}
	return identifier, nil
}

func (c *Client) TrackTimingEvent(ctx context.Context, identifier string) error {
	return c.call(ctx, api.Method_TrackTimingEvent, identifier, c.options.Now().UnixMilli())
}

func (c *Client) TrackTimingEventWithTags(ctx context.Context, identifier string, tags api.Tags) error {
	return c.call(ctx, api.Method_TrackTimingEventWithTags, identifier, c.options.Now().UnixMilli(), tags)
}

// ReportNonFatalIssue reports a state that should be unreachable, with the
// caller's stack. Issues are grouped by reason.
func (c *Client) ReportNonFatalIssue(ctx context.Context, reason string, userInfo map[string]interface{}) error {
	return c.reportNonFatalIssue(ctx, callerStack(3), reason, userInfo)
}

// ReportNonFatalIssueWithError reports a caught error. An empty reason
// becomes "<error type>: <message>". The error's own stack trace is used
// when it carries one.
func (c *Client) ReportNonFatalIssueWithError(ctx context.Context, err error, reason string, userInfo map[string]interface{}) error {
	if err == nil {
		return c.reportNonFatalIssue(ctx, callerStack(3), reason, userInfo)
	}
	if reason == "" {
		reason = errorReason(err)
	}
	stack := errorStack(err)
	if stack == "" {
		stack = callerStack(3)
	}
	return c.reportNonFatalIssue(ctx, stack, reason, userInfo)
}

func (c *Client) reportNonFatalIssue(ctx context.Context, stack, reason string, userInfo map[string]interface{}) error {
	var info interface{}
	if userInfo != nil {
		info = userInfo
	}
	return c.call(ctx, api.Method_ReportNonFatalIssue, stack, reason, info)
}

// StartFeedback opens the feedback UI. The host ignores it while feedback
// invocation is disabled.
func (c *Client) StartFeedback(ctx context.Context) error {
	return c.call(ctx, api.Method_StartFeedback)
}

func (c *Client) Log(ctx context.Context, level api.LogLevel, message string) error {
	return c.call(ctx, api.Method_Log, level.String(), message)
}

func (c *Client) Debug(ctx context.Context, message string) error {
	return c.Log(ctx, api.LogLevelDebug, message)
}

func (c *Client) Info(ctx context.Context, message string) error {
	return c.Log(ctx, api.LogLevelInfo, message)
}

func (c *Client) Warning(ctx context.Context, message string) error {
	return c.Log(ctx, api.LogLevelWarning, message)
}

func (c *Client) Error(ctx context.Context, message string) error {
	return c.Log(ctx, api.LogLevelError, message)
}

// CheckForUpdate asks the host to look for a newer build. The host ignores
// it while update notifications are disabled.
func (c *Client) CheckForUpdate(ctx context.Context) error {
	return c.call(ctx, api.Method_CheckForUpdate)
}
