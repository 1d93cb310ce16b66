package service

import (
	"testing"

	"gesturecontrol/config"
	"gesturecontrol/models"
)

func testScrollConfig() config.ScrollConfig {
	return config.Default().Scroll
}

func sumTicks(ticks []int) int {
	total := 0
	for _, t := range ticks {
		total += t
	}
	return total
}

func TestPlanScroll_NoDurationUsesBase(t *testing.T) {
	cfg := testScrollConfig()

	for _, dir := range []models.ScrollDirection{models.ScrollUp, models.ScrollDown} {
		for _, d := range []float64{0, -1, -0.5} {
			plan := PlanScroll(cfg, dir, d)
			if plan.Total != cfg.BaseMagnitude {
				t.Errorf("%s duration %v: expected total %d, got %d", dir, d, cfg.BaseMagnitude, plan.Total)
			}
		}
	}
}

func TestPlanScroll_Acceleration(t *testing.T) {
	cfg := testScrollConfig() // base 8, rate 15, max 100

	tests := []struct {
		duration float64
		want     int
	}{
		{0.1, 9}, // 9.5 truncated
		{1, 23},
		{2, 38},
		{6, 98},
		{6.2, 100},
		{10, 100},
		{1000, 100},
	}

	for _, tt := range tests {
		plan := PlanScroll(cfg, models.ScrollUp, tt.duration)
		if plan.Total != tt.want {
			t.Errorf("duration %v: expected total %d, got %d", tt.duration, tt.want, plan.Total)
		}
	}
}

func TestPlanScroll_Monotonic(t *testing.T) {
	cfg := testScrollConfig()

	prev := 0
	for d := 0.0; d <= 10; d += 0.05 {
		total := PlanScroll(cfg, models.ScrollDown, d).Total
		if total < prev {
			t.Fatalf("magnitude decreased at duration %v: %d < %d", d, total, prev)
		}
		if total > cfg.MaxMagnitude {
			t.Fatalf("magnitude %d exceeds max %d at duration %v", total, cfg.MaxMagnitude, d)
		}
		prev = total
	}
}

func TestPlanScroll_TicksSumToTotal(t *testing.T) {
	configs := []config.ScrollConfig{
		testScrollConfig(),
		{BaseMagnitude: 3, AccelerationRate: 7, MaxMagnitude: 97, UnitSize: 4},
		{BaseMagnitude: 1, AccelerationRate: 11, MaxMagnitude: 50, UnitSize: 7},
		{BaseMagnitude: 10, AccelerationRate: 0, MaxMagnitude: 10, UnitSize: 1},
		{BaseMagnitude: 2, AccelerationRate: 5, MaxMagnitude: 40, UnitSize: 16},
	}

	for _, cfg := range configs {
		for d := 0.0; d <= 12; d += 0.37 {
			for _, dir := range []models.ScrollDirection{models.ScrollUp, models.ScrollDown} {
				plan := PlanScroll(cfg, dir, d)

				sign := 1
				if dir == models.ScrollDown {
					sign = -1
				}
				if got := sumTicks(plan.Ticks); got != sign*plan.Total {
					t.Fatalf("cfg %+v duration %v %s: ticks sum to %d, total %d", cfg, d, dir, got, plan.Total)
				}

				for _, tick := range plan.Ticks {
					if tick*sign <= 0 {
						t.Fatalf("cfg %+v duration %v %s: tick %d has wrong sign or is zero", cfg, d, dir, tick)
					}
				}
			}
		}
	}
}

func TestPlanScroll_TickCount(t *testing.T) {
	cfg := testScrollConfig() // unit 4

	plan := PlanScroll(cfg, models.ScrollUp, 0)
	if len(plan.Ticks) != 2 {
		t.Errorf("Expected 8/4 = 2 ticks, got %v", plan.Ticks)
	}

	// 38 over 9 calls: two calls carry 5, the rest 4
	plan = PlanScroll(cfg, models.ScrollUp, 2)
	if len(plan.Ticks) != 9 {
		t.Fatalf("Expected 9 ticks, got %v", plan.Ticks)
	}
	if plan.Ticks[0] != 5 || plan.Ticks[1] != 5 || plan.Ticks[2] != 4 {
		t.Errorf("Expected remainder spread over the first ticks, got %v", plan.Ticks)
	}
}

func TestPlanScroll_SmallerThanUnit(t *testing.T) {
	cfg := config.ScrollConfig{BaseMagnitude: 3, MaxMagnitude: 10, UnitSize: 4}

	plan := PlanScroll(cfg, models.ScrollDown, 0)
	if len(plan.Ticks) != 1 || plan.Ticks[0] != -3 {
		t.Errorf("Expected a single tick of -3, got %v", plan.Ticks)
	}
}

func TestPlanScroll_ZeroMagnitude(t *testing.T) {
	cfg := config.ScrollConfig{BaseMagnitude: 0, MaxMagnitude: 0, UnitSize: 4}

	plan := PlanScroll(cfg, models.ScrollUp, 3)
	if plan.Total != 0 || len(plan.Ticks) != 0 {
		t.Errorf("Expected no ticks, got total %d ticks %v", plan.Total, plan.Ticks)
	}
}
