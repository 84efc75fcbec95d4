package dispatcher

// MaxCount caps the pending repeat count.
const MaxCount = 10000

// countState tracks repeat count accumulation.
type countState struct {
	value  int
	active bool
}

func (c *countState) reset() {
	c.value = 0
	c.active = false
}

// push appends a digit. A leading zero is not a count and is rejected.
func (c *countState) push(digit int) bool {
	if !c.active && digit == 0 {
		return false
	}
	c.active = true
	c.value = min(c.value*10+digit, MaxCount)
	return true
}

// PushCountDigit appends a decimal digit to the pending repeat count.
// Returns false when the digit was not taken: a leading zero, or the
// layer is disabled.
func (d *Dispatcher) PushCountDigit(digit int) (bool, error) {
	if digit < 0 || digit > 9 {
		return false, ErrInvalidDigit
	}
	if !d.enabled {
		return false, nil
	}
	var accepted bool
	d.mutate(func() {
		accepted = d.count.push(digit)
	})
	return accepted, nil
}

// Count returns the pending repeat count without consuming it.
func (d *Dispatcher) Count() (int, bool) {
	return d.count.value, d.count.active
}

// TakeCount returns and clears the pending repeat count.
func (d *Dispatcher) TakeCount() (int, bool) {
	n, ok := d.count.value, d.count.active
	d.count.reset()
	return n, ok
}

// ClearCount discards the pending repeat count.
func (d *Dispatcher) ClearCount() {
	d.count.reset()
}
