package automation

import (
	"log"
	"sync"
)

// DryRunDriver logs primitives instead of sending them to the OS.
// It keeps a virtual cursor so Location and the fail-safe behave sensibly on headless hosts.
type DryRunDriver struct {
	mu     sync.Mutex
	x, y   int
	held   bool
	Width  int
	Height int
}

func NewDryRunDriver(width, height int) *DryRunDriver {
	return &DryRunDriver{
		x:      width / 2,
		y:      height / 2,
		Width:  width,
		Height: height,
	}
}

func (d *DryRunDriver) MoveTo(x, y int) error {
	d.mu.Lock()
	d.x, d.y = x, y
	d.mu.Unlock()
	log.Printf("🧪 dry-run: move to (%d, %d)", x, y)
	return nil
}

func (d *DryRunDriver) Click() error {
	x, y := d.Location()
	log.Printf("🧪 dry-run: click at (%d, %d)", x, y)
	return nil
}

func (d *DryRunDriver) MouseDown() error {
	d.mu.Lock()
	d.held = true
	d.mu.Unlock()
	log.Println("🧪 dry-run: mouse down")
	return nil
}

func (d *DryRunDriver) MouseUp() error {
	d.mu.Lock()
	d.held = false
	d.mu.Unlock()
	log.Println("🧪 dry-run: mouse up")
	return nil
}

func (d *DryRunDriver) KeyTap(key string) error {
	log.Printf("🧪 dry-run: key tap %q (%s)", key, NormalizeKey(key))
	return nil
}

func (d *DryRunDriver) Scroll(amount int) error {
	log.Printf("🧪 dry-run: scroll %d", amount)
	return nil
}

func (d *DryRunDriver) Location() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.x, d.y
}

// Held reports whether the virtual primary button is down
func (d *DryRunDriver) Held() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.held
}

func (d *DryRunDriver) ScreenSize() (int, int) {
	return d.Width, d.Height
}
