package engine

import (
	"container/heap"
	"time"
)

// EventID identifies a scheduled event. The zero value is never issued.
type EventID uint64

// Action is the body of a scheduled event. now is the time passed to Drain,
// which may be later than the event's deadline.
type Action func(now time.Time)

type event struct {
	id       EventID
	deadline time.Time
	period   time.Duration // >0 for repeating events
	seq      uint64        // tie-break for equal deadlines
	action   Action
	index    int
}

type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	e := x.(*event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Scheduler is a deadline-ordered event queue drained once per frame.
//
// It replaces free-running timers: a delayed action is an event with a
// deadline, a periodic tick is an event that re-arms itself, and both are
// cancelled by ID or all at once when a session leaves the state that
// scheduled them. Events only run inside Drain, so they never interleave
// with frame processing.
type Scheduler struct {
	queue  eventHeap
	byID   map[EventID]*event
	nextID EventID
	seq    uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[EventID]*event),
	}
}

// At schedules action to run at the first Drain whose time is >= deadline.
func (s *Scheduler) At(deadline time.Time, action Action) EventID {
	return s.push(deadline, 0, action)
}

// After schedules action to run d after now.
func (s *Scheduler) After(now time.Time, d time.Duration, action Action) EventID {
	return s.push(now.Add(d), 0, action)
}

// Every schedules action to run every period, first at now+period.
// Deadlines advance from the previous deadline rather than from the drain
// time, so a late frame does not shift the phase of later ticks. Ticks that
// were missed entirely (the host stalled for more than one period) are
// dropped, not replayed.
func (s *Scheduler) Every(now time.Time, period time.Duration, action Action) EventID {
	if period <= 0 {
		panic("engine: Every requires a positive period")
	}
	return s.push(now.Add(period), period, action)
}

func (s *Scheduler) push(deadline time.Time, period time.Duration, action Action) EventID {
	s.nextID++
	s.seq++
	e := &event{
		id:       s.nextID,
		deadline: deadline,
		period:   period,
		seq:      s.seq,
		action:   action,
	}
	heap.Push(&s.queue, e)
	s.byID[e.id] = e
	return e.id
}

// Cancel removes a pending event. Cancelling an unknown, finished, or
// already-cancelled event is a no-op. Returns true if an event was removed.
func (s *Scheduler) Cancel(id EventID) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if e.index >= 0 {
		heap.Remove(&s.queue, e.index)
	}
	return true
}

// CancelAll removes every pending event.
func (s *Scheduler) CancelAll() {
	for i := range s.queue {
		s.queue[i].index = -1
	}
	s.queue = s.queue[:0]
	clear(s.byID)
}

// Pending reports whether the event is still scheduled.
func (s *Scheduler) Pending(id EventID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of scheduled events.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// NextDeadline returns the earliest pending deadline.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].deadline, true
}

// Drain runs every event whose deadline is <= now, in deadline order, and
// returns how many ran. Events scheduled by an action with a deadline <= now
// also run in the same Drain; events cancelled by an earlier action in the
// same Drain do not run.
func (s *Scheduler) Drain(now time.Time) int {
	ran := 0
	for len(s.queue) > 0 {
		e := s.queue[0]
		if e.deadline.After(now) {
			break
		}
		heap.Pop(&s.queue)

		if e.period > 0 {
			// Re-arm before running so the action may cancel its own tick.
			for !e.deadline.After(now) {
				e.deadline = e.deadline.Add(e.period)
			}
			s.seq++
			e.seq = s.seq
			heap.Push(&s.queue, e)
		} else {
			delete(s.byID, e.id)
		}

		e.action(now)
		ran++
	}
	return ran
}
