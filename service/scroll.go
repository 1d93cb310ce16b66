package service

import (
	"gesturecontrol/config"
	"gesturecontrol/models"
)

// ScrollPlan is the sequence of wheel calls one scroll action emits
type ScrollPlan struct {
	Direction models.ScrollDirection
	Total     int   // realized magnitude after clamping
	Ticks     []int // signed per-call amounts, summing to ±Total
}

// PlanScroll computes the accelerated scroll for a gesture held for duration seconds.
//
// The magnitude starts at the base, grows linearly with the hold time, is clamped to the
// maximum and truncated to whole units. It is then split into max(1, total/unit) calls
// whose amounts differ by at most one, so no magnitude is lost to integer division.
func PlanScroll(cfg config.ScrollConfig, dir models.ScrollDirection, duration float64) ScrollPlan {
	total := float64(cfg.BaseMagnitude)
	if duration > 0 {
		total += duration * cfg.AccelerationRate
	}
	if total > float64(cfg.MaxMagnitude) {
		total = float64(cfg.MaxMagnitude)
	}
	magnitude := int(total)
	if magnitude < 0 {
		magnitude = 0
	}

	unit := cfg.UnitSize
	if unit <= 0 {
		unit = 1
	}
	calls := max(1, magnitude/unit)
	per, rem := magnitude/calls, magnitude%calls

	sign := 1
	if dir == models.ScrollDown {
		sign = -1
	}

	plan := ScrollPlan{Direction: dir, Ticks: make([]int, 0, calls)}
	for i := 0; i < calls; i++ {
		amount := per
		if i < rem {
			amount++
		}
		if amount <= 0 {
			continue
		}
		plan.Ticks = append(plan.Ticks, sign*amount)
		plan.Total += amount
	}
	return plan
}
