package api

// ClientEvent is sent on Options.ClientEventHandler when the bridge changes state.
type ClientEvent struct {
	EventType ClientEventType `json:"eventType"`
	EventData interface{}     `json:"eventData"`
	Status    string          `json:"status"`
	Error     error           `json:"error"`
}

type ClientEventType string

const (
	ClientEventType_Initialized ClientEventType = "initialized"
	ClientEventType_Error       ClientEventType = "error"
)
