package stage3d

import "time"

// Clock measures the time between updates for frame-rate independent animation.
type Clock struct {
	start   time.Time
	last    time.Time
	started bool
	now     func() time.Time
}

// NewClock returns a new Clock; it starts measuring on the first call to Delta.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Delta returns the seconds elapsed since the previous call. The first call returns 0.
func (clock *Clock) Delta() float64 {

	now := clock.now()

	if !clock.started {
		clock.start = now
		clock.last = now
		clock.started = true
		return 0
	}

	dt := now.Sub(clock.last).Seconds()
	clock.last = now
	return dt

}

// Elapsed returns the seconds elapsed since the first call to Delta, or 0 if it hasn't been called.
func (clock *Clock) Elapsed() float64 {
	if !clock.started {
		return 0
	}
	return clock.now().Sub(clock.start).Seconds()
}
