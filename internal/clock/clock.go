package clock

import "time"

// Handle identifies one scheduled callback. The zero value is never issued.
type Handle uint64

type request struct {
	handle Handle
	fn     func()
}

// Frame is a display-refresh style clock: every scheduled callback runs once,
// on the next Fire. Callbacks scheduled while firing wait for the following
// frame. The host calls Fire once per refresh on the same goroutine that
// schedules and cancels.
type Frame struct {
	next    Handle
	pending []request
	firing  []request
	frames  uint64
}

func NewFrame() *Frame { return &Frame{} }

func (f *Frame) Schedule(fn func()) Handle {
	f.next++
	f.pending = append(f.pending, request{handle: f.next, fn: fn})
	return f.next
}

// Cancel drops a callback that has not run yet. It takes effect immediately,
// including for callbacks of the frame currently firing.
func (f *Frame) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}
	for _, q := range [][]request{f.pending, f.firing} {
		for i := range q {
			if q[i].handle == h && q[i].fn != nil {
				q[i].fn = nil
				return true
			}
		}
	}
	return false
}

// Fire runs the callbacks that were pending when it was called and returns
// how many ran.
func (f *Frame) Fire() int {
	f.frames++
	f.firing, f.pending = f.pending, nil
	n := 0
	for i := range f.firing {
		fn := f.firing[i].fn
		if fn == nil {
			continue
		}
		f.firing[i].fn = nil
		fn()
		n++
	}
	f.firing = nil
	return n
}

// Live counts the callbacks waiting for the next Fire.
func (f *Frame) Live() int {
	n := 0
	for _, q := range f.pending {
		if q.fn != nil {
			n++
		}
	}
	return n
}

// Frames is the number of times Fire has been called.
func (f *Frame) Frames() uint64 { return f.frames }

// Interval is the refresh period for a frame rate; non-positive rates fall back to 60.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
