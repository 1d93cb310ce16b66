package automation

import (
	"fmt"
	"image"

	"gesturecontrol/models"

	"github.com/kbinani/screenshot"
)

// Displays lists the bounds of every active display
func Displays() []models.Display {
	n := screenshot.NumActiveDisplays()
	displays := make([]models.Display, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		displays = append(displays, models.Display{
			Index:  i,
			X:      b.Min.X,
			Y:      b.Min.Y,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}
	return displays
}

// CaptureDisplay grabs the full contents of display i
func CaptureDisplay(i int) (*image.RGBA, error) {
	n := screenshot.NumActiveDisplays()
	if i < 0 || i >= n {
		return nil, fmt.Errorf("display %d out of range (%d active)", i, n)
	}
	img, err := screenshot.CaptureDisplay(i)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display %d: %w", i, err)
	}
	return img, nil
}
