package models

// Landmark is a normalized [x, y] hand keypoint
type Landmark [2]float64

// GestureRequest holds the 21 keypoints of one detected hand
type GestureRequest struct {
	Landmarks []Landmark `json:"landmarks" binding:"required,len=21"`
}

// GestureState reports which gestures the hand currently forms
type GestureState struct {
	Scroll           ScrollDirection `json:"scroll,omitempty"`
	Pinch            bool            `json:"pinch"`
	IndexMiddlePinch bool            `json:"index_middle_pinch"`
	LGesture         bool            `json:"l_gesture"`
	MiddleFinger     bool            `json:"middle_finger"`
}

// Display describes one attached screen
type Display struct {
	Index  int `json:"index"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ScreenInfo struct {
	Displays []Display `json:"displays"`
	CursorX  int       `json:"cursor_x"`
	CursorY  int       `json:"cursor_y"`
}

// SystemStats is a point-in-time snapshot of the host
type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	Processes     int     `json:"processes"`
	BootedSince   string  `json:"booted_since"`
	ServingSince  string  `json:"serving_since"`
	Paused        bool    `json:"paused"`
}
