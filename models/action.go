package models

// ActionKind is the tag carried in Action.Type
type ActionKind string

const (
	KindMouseMove  ActionKind = "mouse_move"
	KindMouseClick ActionKind = "mouse_click"
	KindMouseDown  ActionKind = "mouse_down"
	KindMouseUp    ActionKind = "mouse_up"
	KindKeyPress   ActionKind = "key_press"
	KindScroll     ActionKind = "scroll"
)

// ScrollDirection is either "up" or "down"
type ScrollDirection string

const (
	ScrollUp   ScrollDirection = "up"
	ScrollDown ScrollDirection = "down"
)

// Action is one control instruction sent by a client.
// Coordinates are accepted as JSON numbers and rounded to whole pixels.
type Action struct {
	Type      string   `json:"type"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	Key       string   `json:"key,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Duration  *float64 `json:"duration,omitempty"` // seconds the scroll gesture has been held
}

// Fallback reasons attached to an "unknown action" result
const (
	ReasonUnrecognizedType = "unrecognized_type"
	ReasonInvalidFields    = "invalid_fields"
)

const StatusUnknownAction = "unknown action"

// ActionResult is the status descriptor returned for every dispatched action
type ActionResult struct {
	Status string `json:"status"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// UnknownActionResult builds the fallback result for actions that could not be dispatched
func UnknownActionResult(reason, detail string) ActionResult {
	return ActionResult{
		Status: StatusUnknownAction,
		Reason: reason,
		Detail: detail,
	}
}

// ActionEvent is pushed to WebSocket subscribers after each dispatch
type ActionEvent struct {
	Type      string       `json:"type"` // always "action_executed"
	ID        string       `json:"id"`
	Action    Action       `json:"action"`
	Result    ActionResult `json:"result"`
	Error     string       `json:"error,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// ActionRecord is one row of the action journal
type ActionRecord struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  int64  `json:"created_at"`
}
