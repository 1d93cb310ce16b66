package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"gesturecontrol/automation"
	"gesturecontrol/config"
	"gesturecontrol/models"

	"github.com/google/uuid"
)

// ErrPaused is returned for dispatchable actions while input control is paused
var ErrPaused = errors.New("input control is paused")

// EventBroadcaster interface to avoid import cycle
type EventBroadcaster interface {
	BroadcastToAll(message interface{})
}

// ActionDispatcher turns client actions into OS input primitives.
// It holds no per-request state; one instance serves every request.
type ActionDispatcher struct {
	driver  automation.Driver
	scroll  config.ScrollConfig
	journal *ActionJournal
	events  EventBroadcaster
	paused  atomic.Bool

	// wait blocks between the wheel calls of one scroll
	wait func(ctx context.Context, d time.Duration) error
}

func NewActionDispatcher(driver automation.Driver, scroll config.ScrollConfig) *ActionDispatcher {
	return &ActionDispatcher{
		driver: driver,
		scroll: scroll,
		wait:   sleepContext,
	}
}

// SetJournal records every dispatched action into j
func (d *ActionDispatcher) SetJournal(j *ActionJournal) {
	d.journal = j
}

// SetBroadcaster publishes an ActionEvent to b after every dispatch
func (d *ActionDispatcher) SetBroadcaster(b EventBroadcaster) {
	d.events = b
}

func (d *ActionDispatcher) Pause() {
	if !d.paused.Swap(true) {
		log.Println("⏸️ Input control paused")
	}
}

func (d *ActionDispatcher) Resume() {
	if d.paused.Swap(false) {
		log.Println("▶️ Input control resumed")
	}
}

func (d *ActionDispatcher) Paused() bool {
	return d.paused.Load()
}

// Cursor reports the pointer position as the input driver sees it
func (d *ActionDispatcher) Cursor() (int, int) {
	return d.driver.Location()
}

// Dispatch performs the single side effect the action describes and returns its status.
// Unrecognized or incomplete actions produce an "unknown action" result, not an error.
// Errors come only from the input driver or the pause switch.
func (d *ActionDispatcher) Dispatch(ctx context.Context, action models.Action) (models.ActionResult, error) {
	start := time.Now()
	cmd := ParseAction(action)

	var (
		result models.ActionResult
		err    error
	)
	if _, unrecognized := cmd.(UnrecognizedCommand); !unrecognized && d.Paused() {
		err = ErrPaused
	} else {
		result, err = d.execute(ctx, cmd)
	}

	d.record(ctx, action, result, err, time.Since(start))
	return result, err
}

func (d *ActionDispatcher) execute(ctx context.Context, cmd Command) (models.ActionResult, error) {
	switch c := cmd.(type) {
	case MoveCommand:
		if err := d.driver.MoveTo(c.X, c.Y); err != nil {
			return models.ActionResult{}, fmt.Errorf("mouse_move: %w", err)
		}
		x, y := c.X, c.Y
		return models.ActionResult{Status: "moved", X: &x, Y: &y}, nil

	case ClickCommand:
		if err := d.driver.Click(); err != nil {
			return models.ActionResult{}, fmt.Errorf("mouse_click: %w", err)
		}
		return models.ActionResult{Status: "clicked"}, nil

	case MouseDownCommand:
		if err := d.driver.MouseDown(); err != nil {
			return models.ActionResult{}, fmt.Errorf("mouse_down: %w", err)
		}
		return models.ActionResult{Status: "mouse_down"}, nil

	case MouseUpCommand:
		if err := d.driver.MouseUp(); err != nil {
			return models.ActionResult{}, fmt.Errorf("mouse_up: %w", err)
		}
		return models.ActionResult{Status: "mouse_up"}, nil

	case KeyPressCommand:
		if err := d.driver.KeyTap(c.Key); err != nil {
			return models.ActionResult{}, fmt.Errorf("key_press: %w", err)
		}
		return models.ActionResult{Status: "pressed " + c.Key}, nil

	case ScrollCommand:
		total, err := d.scrollBy(ctx, c)
		if err != nil {
			return models.ActionResult{}, fmt.Errorf("scroll: %w", err)
		}
		return models.ActionResult{Status: fmt.Sprintf("scrolled %s by %d", c.Direction, total)}, nil

	case UnrecognizedCommand:
		log.Printf("Unknown action %q (%s): %s", c.Type, c.Reason, c.Detail)
		return models.UnknownActionResult(c.Reason, c.Detail), nil
	}

	return models.ActionResult{}, fmt.Errorf("unhandled command %T", cmd)
}

// scrollBy emits the planned wheel calls, pausing between them to smooth the motion
func (d *ActionDispatcher) scrollBy(ctx context.Context, c ScrollCommand) (int, error) {
	plan := PlanScroll(d.scroll, c.Direction, c.Duration)
	for i, tick := range plan.Ticks {
		if i > 0 {
			if err := d.wait(ctx, d.scroll.Interval()); err != nil {
				return 0, err
			}
		}
		if err := d.driver.Scroll(tick); err != nil {
			return 0, err
		}
	}
	return plan.Total, nil
}

func (d *ActionDispatcher) record(ctx context.Context, action models.Action, result models.ActionResult, err error, elapsed time.Duration) {
	if d.journal == nil && d.events == nil {
		return
	}

	id := uuid.NewString()
	now := time.Now()
	status := result.Status
	var errMsg string
	if err != nil {
		status = "failed"
		errMsg = err.Error()
	}

	if d.journal != nil {
		rec := models.ActionRecord{
			ID:         id,
			Type:       action.Type,
			Status:     status,
			Reason:     result.Reason,
			Error:      errMsg,
			DurationMS: elapsed.Milliseconds(),
			CreatedAt:  now.UnixMilli(),
		}
		if jerr := d.journal.Record(context.WithoutCancel(ctx), rec); jerr != nil {
			log.Printf("Failed to journal action %s: %v", id, jerr)
		}
	}

	if d.events != nil {
		d.events.BroadcastToAll(models.ActionEvent{
			Type:      "action_executed",
			ID:        id,
			Action:    action,
			Result:    result,
			Error:     errMsg,
			Timestamp: now.UnixMilli(),
		})
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
