package service

import (
	"math"

	"gesturecontrol/models"
)

// Hand landmark indices (21-point hand model)
const (
	lmWrist     = 0
	lmThumbTip  = 4
	lmIndexMCP  = 5
	lmIndexTip  = 8
	lmMiddleMCP = 9
	lmMiddleTip = 12
	lmRingMCP   = 13
	lmRingTip   = 16
	lmPinkyMCP  = 17
	lmPinkyTip  = 20

	handLandmarkCount = 21
)

// Gesture thresholds, in normalized image coordinates
const (
	fingerFoldedToMCP       = 0.09 // tip to its MCP for a folded finger
	fingerFoldedToWrist     = 0.16 // tip to wrist for a folded finger
	fingerExtendedMinYDiff  = 0.08 // tip above/below MCP for extended fingers
	fingerParallelMaxYDiff  = 0.07 // index and middle tips roughly level
	tipMinMCPDistance       = 0.1
	pinchThreshold          = 0.05
	fingerExtensionMin      = 0.18
	fingerFoldedMax         = 0.15
	middleFingerExtension   = 0.35
	otherFingersFoldedLimit = 0.25
)

// DetectGestures evaluates every known gesture against one hand.
// Hands with fewer than 21 landmarks report no gestures.
func DetectGestures(hand []models.Landmark) models.GestureState {
	if len(hand) < handLandmarkCount {
		return models.GestureState{}
	}
	return models.GestureState{
		Scroll:           detectScroll(hand),
		Pinch:            distance(hand[lmThumbTip], hand[lmIndexTip]) < pinchThreshold,
		IndexMiddlePinch: distance(hand[lmIndexTip], hand[lmMiddleTip]) < pinchThreshold,
		LGesture:         isLGesture(hand),
		MiddleFinger:     isMiddleFingerGesture(hand),
	}
}

func distance(a, b models.Landmark) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// detectScroll recognizes a fist with index and middle extended together, pointing up or down
func detectScroll(hand []models.Landmark) models.ScrollDirection {
	wrist := hand[lmWrist]
	folded := func(tip, mcp int) bool {
		return distance(hand[tip], hand[mcp]) < fingerFoldedToMCP ||
			distance(hand[tip], wrist) < fingerFoldedToWrist
	}
	if !folded(lmRingTip, lmRingMCP) || !folded(lmPinkyTip, lmPinkyMCP) {
		return ""
	}

	if distance(hand[lmIndexTip], hand[lmIndexMCP]) <= tipMinMCPDistance ||
		distance(hand[lmMiddleTip], hand[lmMiddleMCP]) <= tipMinMCPDistance {
		return ""
	}

	indexTipY, middleTipY := hand[lmIndexTip][1], hand[lmMiddleTip][1]
	indexMCPY, middleMCPY := hand[lmIndexMCP][1], hand[lmMiddleMCP][1]

	if math.Abs(indexTipY-middleTipY) > fingerParallelMaxYDiff {
		return ""
	}

	// image y grows downwards
	if indexTipY < indexMCPY-fingerExtendedMinYDiff && middleTipY < middleMCPY-fingerExtendedMinYDiff {
		return models.ScrollUp
	}
	if indexTipY > indexMCPY+fingerExtendedMinYDiff && middleTipY > middleMCPY+fingerExtendedMinYDiff {
		return models.ScrollDown
	}
	return ""
}

// isLGesture: thumb and index spread away from the wrist, the other three folded
func isLGesture(hand []models.Landmark) bool {
	wrist := hand[lmWrist]
	for _, tip := range []int{lmMiddleTip, lmRingTip, lmPinkyTip} {
		if distance(hand[tip], wrist) >= fingerFoldedMax {
			return false
		}
	}
	return distance(hand[lmThumbTip], wrist) > fingerExtensionMin &&
		distance(hand[lmIndexTip], wrist) > fingerExtensionMin
}

func isMiddleFingerGesture(hand []models.Landmark) bool {
	wrist := hand[lmWrist]
	for _, tip := range []int{lmThumbTip, lmIndexTip, lmRingTip, lmPinkyTip} {
		if distance(hand[tip], wrist) >= otherFingersFoldedLimit {
			return false
		}
	}
	return distance(hand[lmMiddleTip], wrist) > middleFingerExtension
}
