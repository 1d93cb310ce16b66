package service

import (
	"fmt"
	"math"
	"strings"

	"gesturecontrol/models"
)

// Command is the closed set of dispatchable actions.
// ParseAction is the only constructor; ActionDispatcher.execute switches over every variant.
type Command interface {
	Kind() models.ActionKind
	isCommand()
}

type MoveCommand struct {
	X, Y int
}

type ClickCommand struct{}

type MouseDownCommand struct{}

type MouseUpCommand struct{}

type KeyPressCommand struct {
	Key string
}

type ScrollCommand struct {
	Direction models.ScrollDirection
	Duration  float64 // seconds, never negative
}

// UnrecognizedCommand carries an action that cannot be dispatched
type UnrecognizedCommand struct {
	Type   string
	Reason string
	Detail string
}

func (MoveCommand) Kind() models.ActionKind { return models.KindMouseMove }
func (ClickCommand) Kind() models.ActionKind { return models.KindMouseClick }
func (MouseDownCommand) Kind() models.ActionKind { return models.KindMouseDown }
func (MouseUpCommand) Kind() models.ActionKind { return models.KindMouseUp }
func (KeyPressCommand) Kind() models.ActionKind { return models.KindKeyPress }
func (ScrollCommand) Kind() models.ActionKind { return models.KindScroll }
func (c UnrecognizedCommand) Kind() models.ActionKind { return models.ActionKind(c.Type) }

func (MoveCommand) isCommand() {}
func (ClickCommand) isCommand() {}
func (MouseDownCommand) isCommand() {}
func (MouseUpCommand) isCommand() {}
func (KeyPressCommand) isCommand() {}
func (ScrollCommand) isCommand() {}
func (UnrecognizedCommand) isCommand() {}

// ParseAction validates the fields the action's type requires and returns its command.
// Anything that cannot be dispatched becomes an UnrecognizedCommand, never an error.
func ParseAction(a models.Action) Command {
	invalid := func(format string, args ...interface{}) Command {
		return UnrecognizedCommand{
			Type:   a.Type,
			Reason: models.ReasonInvalidFields,
			Detail: fmt.Sprintf(format, args...),
		}
	}

	switch models.ActionKind(a.Type) {
	case models.KindMouseMove:
		if a.X == nil || a.Y == nil {
			return invalid("mouse_move requires x and y")
		}
		x, okX := toPixel(*a.X)
		y, okY := toPixel(*a.Y)
		if !okX || !okY {
			return invalid("mouse_move coordinates out of range")
		}
		return MoveCommand{X: x, Y: y}

	case models.KindMouseClick:
		return ClickCommand{}

	case models.KindMouseDown:
		return MouseDownCommand{}

	case models.KindMouseUp:
		return MouseUpCommand{}

	case models.KindKeyPress:
		if a.Key == "" {
			return invalid("key_press requires key")
		}
		return KeyPressCommand{Key: a.Key}

	case models.KindScroll:
		dir := models.ScrollDirection(strings.ToLower(strings.TrimSpace(a.Direction)))
		if dir != models.ScrollUp && dir != models.ScrollDown {
			return invalid("scroll direction must be up or down, got %q", a.Direction)
		}
		var duration float64
		if a.Duration != nil && *a.Duration > 0 {
			duration = *a.Duration
		}
		return ScrollCommand{Direction: dir, Duration: duration}
	}

	return UnrecognizedCommand{
		Type:   a.Type,
		Reason: models.ReasonUnrecognizedType,
		Detail: fmt.Sprintf("unrecognized action type %q", a.Type),
	}
}

func toPixel(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Round(v)), true
}
