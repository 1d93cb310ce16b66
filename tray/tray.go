// Package tray provides a system tray icon to pause input control or stop the server.
package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"

	"github.com/getlantern/systray"
)

// Controller is the pause switch the tray toggles
type Controller interface {
	Pause()
	Resume()
	Paused() bool
}

// Tray manages the system tray icon and menu
type Tray struct {
	ctrl   Controller
	addr   string
	onQuit func()
}

// New creates a tray for ctrl. onQuit runs when the user picks Quit.
func New(ctrl Controller, addr string, onQuit func()) *Tray {
	return &Tray{
		ctrl:   ctrl,
		addr:   addr,
		onQuit: onQuit,
	}
}

// Run starts the tray event loop (blocks, must be called from the main goroutine)
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {
		log.Println("Tray closed")
	})
}

// Quit ends the tray event loop
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Gesture Control")
	systray.SetTooltip("Gesture control listening on " + t.addr)
	systray.SetIcon(icon())

	pause := systray.AddMenuItem(pauseTitle(t.ctrl.Paused()), "Stop sending input to this computer")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Stop the control server")

	go func() {
		for {
			select {
			case <-pause.ClickedCh:
				paused := toggle(t.ctrl)
				pause.SetTitle(pauseTitle(paused))
				if paused {
					pause.Check()
				} else {
					pause.Uncheck()
				}
			case <-quit.ClickedCh:
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

// toggle flips the pause switch and returns the new state
func toggle(ctrl Controller) bool {
	if ctrl.Paused() {
		ctrl.Resume()
		return false
	}
	ctrl.Pause()
	return true
}

func pauseTitle(paused bool) string {
	if paused {
		return "Resume input"
	}
	return "Pause input"
}

// icon draws a 16x16 filled circle
func icon() []byte {
	const size = 16
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fill := color.NRGBA{R: 0x2e, G: 0x86, B: 0xde, A: 0xff}
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			if dx*dx+dy*dy <= c*c {
				img.Set(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("Failed to encode tray icon: %v", err)
		return nil
	}
	return buf.Bytes()
}
