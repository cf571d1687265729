package api

// Tags is a flat string-to-string dictionary attached to a tracked event.
// Do not put personal data in tags.
type Tags map[string]string

// Copy returns an independent copy of t. A nil map stays nil.
func (t Tags) Copy() Tags {
	if t == nil {
		return nil
	}
	out := make(Tags, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Platform identifies the cross-platform framework a non-fatal issue originates from.
type Platform string

const (
	Platform_ReactNative Platform = "ReactNative"
	Platform_Go          Platform = "Go"
)

type NonFatalIssue struct {
	StackTrace string                 `json:"stackTrace"`
	Reason     string                 `json:"reason,omitempty"`
	UserInfo   map[string]interface{} `json:"userInfo,omitempty"`
	Platform   Platform               `json:"platform"`
}

// Feature flag events produced by the OpenFeature hook.
const (
	EventCategory_FeatureFlag = "FeatureFlag"

	EventTag_FlagVariant = "variant"
	EventTag_FlagReason  = "reason"
	EventTag_FlagValue   = "value"
)
