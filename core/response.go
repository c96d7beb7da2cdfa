package core

type ResponseBase[T any] struct {
	Status  string `json:"status"`
	Content T      `json:"content"`
	Error   string `json:"error,omitempty"`
}

// RealtimeRequest is sent by a websocket client to start or stop listening to a path.
type RealtimeRequest struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

const (
	RealtimeListen   = "listen"
	RealtimeUnlisten = "unlisten"
)

// RealtimeEvent is pushed by the server for each snapshot, or once with Error set when the
// listener for Path terminated.
type RealtimeEvent struct {
	Path     string    `json:"path"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Error    string    `json:"error,omitempty"`
	Code     int       `json:"code,omitempty"`
}
