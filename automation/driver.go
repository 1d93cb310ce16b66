// Package automation wraps the host's input subsystem behind a small Driver interface.
package automation

import "errors"

// ErrFailSafe is returned when the fail-safe interlock aborts an input primitive
var ErrFailSafe = errors.New("fail-safe triggered: pointer is in a screen corner")

// Driver is the set of OS input primitives the dispatcher relies on.
// Implementations are called synchronously from request handlers.
type Driver interface {
	MoveTo(x, y int) error
	Click() error
	MouseDown() error
	MouseUp() error
	KeyTap(key string) error
	// Scroll emits one vertical wheel call; positive scrolls up, negative down
	Scroll(amount int) error
	Location() (x, y int)
}
