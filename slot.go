package texticles

import "time"

// Slot is a single-slot request queue. A new request replaces a pending one
// instead of queueing behind it.
type Slot[T any] struct {
	value T
	full  bool
}

// Put stores v, discarding any pending value.
func (s *Slot[T]) Put(v T) {
	s.value = v
	s.full = true
}

// Take returns the pending value and empties the slot.
func (s *Slot[T]) Take() (T, bool) {
	var zero T
	if !s.full {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.full = false
	return v, true
}

// Pending reports whether a value is waiting.
func (s *Slot[T]) Pending() bool {
	return s.full
}

// Debouncer holds the latest request until it has been quiet for Delay.
type Debouncer[T any] struct {
	Delay    time.Duration
	slot     Slot[T]
	deadline time.Time
}

// Request replaces the pending value and re-arms the deadline.
func (d *Debouncer[T]) Request(v T, now time.Time) {
	d.slot.Put(v)
	d.deadline = now.Add(d.Delay)
}

// Due returns the pending value once its deadline has passed.
func (d *Debouncer[T]) Due(now time.Time) (T, bool) {
	if !d.slot.Pending() || now.Before(d.deadline) {
		var zero T
		return zero, false
	}
	return d.slot.Take()
}
