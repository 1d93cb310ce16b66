package automation

import (
	"fmt"
	"log"

	"github.com/go-vgo/robotgo"
)

const (
	primaryButton = "left"

	// settle delay (ms) robotgo sleeps after each primitive while interlocks are on
	interlockSleepMS = 10
)

// RobotDriver sends input to the OS through robotgo
type RobotDriver struct{}

// NewRobotDriver configures robotgo's process-wide delays and returns a driver.
// With interlocks on, the driver is wrapped in the fail-safe corner check.
func NewRobotDriver(disableInterlocks bool) Driver {
	if disableInterlocks {
		robotgo.MouseSleep = 0
		robotgo.KeySleep = 0
		log.Println("⚠️ Input safety interlocks disabled")
		return &RobotDriver{}
	}

	robotgo.MouseSleep = interlockSleepMS
	robotgo.KeySleep = interlockSleepMS
	return WithFailSafe(&RobotDriver{}, robotgo.GetScreenSize)
}

func (d *RobotDriver) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (d *RobotDriver) Click() error {
	robotgo.Click(primaryButton, false)
	return nil
}

func (d *RobotDriver) MouseDown() error {
	if err := robotgo.Toggle(primaryButton); err != nil {
		return fmt.Errorf("mouse down: %w", err)
	}
	return nil
}

func (d *RobotDriver) MouseUp() error {
	if err := robotgo.Toggle(primaryButton, "up"); err != nil {
		return fmt.Errorf("mouse up: %w", err)
	}
	return nil
}

func (d *RobotDriver) KeyTap(key string) error {
	if err := robotgo.KeyTap(NormalizeKey(key)); err != nil {
		return fmt.Errorf("key tap %q: %w", key, err)
	}
	return nil
}

func (d *RobotDriver) Scroll(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

func (d *RobotDriver) Location() (int, int) {
	return robotgo.Location()
}
