package model

// RemoveCodeResponse reports how many copies of a code were deleted.
type RemoveCodeResponse struct {
	Code    string `json:"code"`
	Removed int64  `json:"removed"`
}

// CountResponse is the answer to a stats request for a single kind.
type CountResponse struct {
	Kind  EntityKind `json:"kind"`
	Count int64      `json:"count"`
}

// SweepAccepted acknowledges a queued sweep.
type SweepAccepted struct {
	Kind      string `json:"kind"`
	TaskID    string `json:"task_id"`
	RequestID string `json:"request_id,omitempty"`
}

// Command describes one bot command for the help listing.
type Command struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Admin       bool   `json:"admin"`
}
