package types

// EvaluateRequest is the body of POST /evaluate and POST /validate
type EvaluateRequest struct {
	Expression string `json:"expression"`
	Mode       string `json:"mode,omitempty"`
}

// EvaluateResponse is a successful evaluation
type EvaluateResponse struct {
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
	Mode      string  `json:"mode"`
}

// ErrorResponse reports a failed evaluation; Kind names the error class and
// Code is the matching CLI exit status
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Code   int    `json:"code,omitempty"`
	Offset *int   `json:"offset,omitempty"`
}

// BatchRequest is the body of POST /batch
type BatchRequest struct {
	Expressions []string `json:"expressions" binding:"required"`
	Mode        string   `json:"mode,omitempty"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
}

// WSMessage represents a WebSocket message from the client
type WSMessage struct {
	Type       string `json:"type"`
	Expression string `json:"expression,omitempty"`
	Mode       string `json:"mode,omitempty"`
}

// ValidateResponse reports the structural check of an expression
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Mode   string `json:"mode"`
	Offset *int   `json:"offset,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// WSReply is every message the server sends on the stream
type WSReply struct {
	Type         string   `json:"type"`
	Message      string   `json:"message,omitempty"`
	ConnectionID string   `json:"connection_id,omitempty"`
	Result       *float64 `json:"result,omitempty"`
	Formatted    string   `json:"formatted,omitempty"`
	Mode         string   `json:"mode,omitempty"`
	Error        string   `json:"error,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	Code         int      `json:"code,omitempty"`
	Offset       *int     `json:"offset,omitempty"`
	Timestamp    int64    `json:"timestamp"`
}
