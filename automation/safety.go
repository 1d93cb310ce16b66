package automation

// failSafeDriver refuses every primitive while the pointer rests in a screen corner,
// giving the local user a way to take control back by slamming the mouse into a corner.
type failSafeDriver struct {
	Driver
	screenSize func() (int, int)
}

// WithFailSafe wraps d with the corner interlock
func WithFailSafe(d Driver, screenSize func() (int, int)) Driver {
	return &failSafeDriver{Driver: d, screenSize: screenSize}
}

func (f *failSafeDriver) check() error {
	x, y := f.Driver.Location()
	w, h := f.screenSize()
	if inCorner(x, y, w, h) {
		return ErrFailSafe
	}
	return nil
}

func (f *failSafeDriver) MoveTo(x, y int) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Driver.MoveTo(x, y)
}

func (f *failSafeDriver) Click() error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Driver.Click()
}

func (f *failSafeDriver) MouseDown() error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Driver.MouseDown()
}

// MouseUp is never blocked so a held button can always be released
func (f *failSafeDriver) MouseUp() error {
	return f.Driver.MouseUp()
}

func (f *failSafeDriver) KeyTap(key string) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Driver.KeyTap(key)
}

func (f *failSafeDriver) Scroll(amount int) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Driver.Scroll(amount)
}

func inCorner(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	atEdgeX := x <= 0 || x >= w-1
	atEdgeY := y <= 0 || y >= h-1
	return atEdgeX && atEdgeY
}
