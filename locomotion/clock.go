package locomotion

import "sort"

// Clock schedules single-shot callbacks against accumulated frame time. It
// never blocks; callbacks run inside Advance on the caller's goroutine.
type Clock struct {
	now     float64
	seq     uint64
	pending []*Deferred
}

// Deferred is a handle to a scheduled callback.
type Deferred struct {
	id   uint64
	due  float64
	fn   func()
	done bool
}

// Cancel stops the callback from running. It reports whether the callback
// was still pending.
func (d *Deferred) Cancel() bool {
	if d == nil || d.done {
		return false
	}
	d.done = true
	d.fn = nil
	return true
}

func (d *Deferred) Pending() bool {
	return d != nil && !d.done
}

func (c *Clock) Now() float64 {
	return c.now
}

// Schedule runs fn once at least delay seconds of frame time from now.
// Callbacks scheduled from inside another callback wait for the next Advance.
func (c *Clock) Schedule(delay float64, fn func()) *Deferred {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	d := &Deferred{id: c.seq, due: c.now + delay, fn: fn}
	c.pending = append(c.pending, d)
	return d
}

// Advance moves the clock forward and runs every callback that came due, in
// due order. It returns how many callbacks ran.
func (c *Clock) Advance(dt float64) int {
	if dt > 0 {
		c.now += dt
	}
	if len(c.pending) == 0 {
		return 0
	}

	var due []*Deferred
	keep := c.pending[:0]
	for _, d := range c.pending {
		switch {
		case d.done:
		case d.due <= c.now:
			due = append(due, d)
		default:
			keep = append(keep, d)
		}
	}
	for i := len(keep); i < len(c.pending); i++ {
		c.pending[i] = nil
	}
	c.pending = keep

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].id < due[j].id
		}
		return due[i].due < due[j].due
	})

	fired := 0
	for _, d := range due {
		// an earlier callback in this batch may have cancelled it
		if d.done {
			continue
		}
		fn := d.fn
		d.done = true
		d.fn = nil
		if fn != nil {
			fn()
		}
		fired++
	}
	return fired
}

// Len returns the number of callbacks still pending.
func (c *Clock) Len() int {
	n := 0
	for _, d := range c.pending {
		if !d.done {
			n++
		}
	}
	return n
}
