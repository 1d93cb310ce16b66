package service

import (
	"testing"

	"gesturecontrol/models"
)

// baseHand returns 21 landmarks all resting on the wrist
func baseHand(wx, wy float64) []models.Landmark {
	hand := make([]models.Landmark, handLandmarkCount)
	for i := range hand {
		hand[i] = models.Landmark{wx, wy}
	}
	return hand
}

func scrollHand(up bool) []models.Landmark {
	// y is mirrored for a hand pointing down
	y := func(v float64) float64 {
		if up {
			return v
		}
		return 1 - v
	}

	hand := baseHand(0.5, y(0.9))
	hand[lmRingMCP] = models.Landmark{0.55, y(0.6)}
	hand[lmRingTip] = models.Landmark{0.55, y(0.65)}
	hand[lmPinkyMCP] = models.Landmark{0.6, y(0.62)}
	hand[lmPinkyTip] = models.Landmark{0.6, y(0.66)}
	hand[lmIndexMCP] = models.Landmark{0.45, y(0.6)}
	hand[lmIndexTip] = models.Landmark{0.45, y(0.3)}
	hand[lmMiddleMCP] = models.Landmark{0.52, y(0.6)}
	hand[lmMiddleTip] = models.Landmark{0.53, y(0.3)}
	hand[lmThumbTip] = models.Landmark{0.3, y(0.6)}
	return hand
}

func TestDetectGestures_Scroll(t *testing.T) {
	up := DetectGestures(scrollHand(true))
	if up.Scroll != models.ScrollUp {
		t.Errorf("Expected scroll up, got %q", up.Scroll)
	}
	if up.Pinch || up.IndexMiddlePinch {
		t.Errorf("Expected no pinch on a scroll hand, got %+v", up)
	}

	down := DetectGestures(scrollHand(false))
	if down.Scroll != models.ScrollDown {
		t.Errorf("Expected scroll down, got %q", down.Scroll)
	}
}

func TestDetectGestures_ScrollNeedsFoldedFingers(t *testing.T) {
	hand := scrollHand(true)
	hand[lmRingTip] = models.Landmark{0.55, 0.2}

	if got := DetectGestures(hand).Scroll; got != "" {
		t.Errorf("Expected no scroll with ring finger extended, got %q", got)
	}
}

func TestDetectGestures_ScrollNeedsLevelTips(t *testing.T) {
	hand := scrollHand(true)
	hand[lmMiddleTip] = models.Landmark{0.53, 0.45}

	if got := DetectGestures(hand).Scroll; got != "" {
		t.Errorf("Expected no scroll with uneven tips, got %q", got)
	}
}

func TestDetectGestures_Pinch(t *testing.T) {
	hand := baseHand(0.5, 0.9)
	hand[lmThumbTip] = models.Landmark{0.4, 0.4}
	hand[lmIndexTip] = models.Landmark{0.42, 0.41}
	hand[lmMiddleTip] = models.Landmark{0.7, 0.3}

	g := DetectGestures(hand)
	if !g.Pinch {
		t.Error("Expected thumb-index pinch")
	}
	if g.IndexMiddlePinch {
		t.Error("Expected no index-middle pinch")
	}
}

func TestDetectGestures_IndexMiddlePinch(t *testing.T) {
	hand := baseHand(0.5, 0.9)
	hand[lmThumbTip] = models.Landmark{0.2, 0.6}
	hand[lmIndexTip] = models.Landmark{0.45, 0.3}
	hand[lmMiddleTip] = models.Landmark{0.46, 0.31}

	g := DetectGestures(hand)
	if !g.IndexMiddlePinch {
		t.Error("Expected index-middle pinch")
	}
	if g.Pinch {
		t.Error("Expected no thumb-index pinch")
	}
}

func TestDetectGestures_LGesture(t *testing.T) {
	hand := baseHand(0.5, 0.5)
	hand[lmMiddleTip] = models.Landmark{0.5, 0.42}
	hand[lmRingTip] = models.Landmark{0.52, 0.44}
	hand[lmPinkyTip] = models.Landmark{0.54, 0.46}
	hand[lmThumbTip] = models.Landmark{0.2, 0.5}
	hand[lmIndexTip] = models.Landmark{0.5, 0.2}

	g := DetectGestures(hand)
	if !g.LGesture {
		t.Error("Expected L gesture")
	}
	if g.MiddleFinger {
		t.Error("Expected no middle finger gesture")
	}
}

func TestDetectGestures_MiddleFinger(t *testing.T) {
	hand := baseHand(0.5, 0.5)
	hand[lmThumbTip] = models.Landmark{0.45, 0.45}
	hand[lmIndexTip] = models.Landmark{0.48, 0.4}
	hand[lmRingTip] = models.Landmark{0.52, 0.42}
	hand[lmPinkyTip] = models.Landmark{0.55, 0.45}
	hand[lmMiddleTip] = models.Landmark{0.5, 0.1}

	g := DetectGestures(hand)
	if !g.MiddleFinger {
		t.Error("Expected middle finger gesture")
	}
	if g.LGesture {
		t.Error("Expected no L gesture")
	}
}

func TestDetectGestures_ShortHand(t *testing.T) {
	g := DetectGestures(make([]models.Landmark, 5))
	if g != (models.GestureState{}) {
		t.Errorf("Expected empty state, got %+v", g)
	}
}
