// Package frame provides a display-refresh scheduler modelled on
// requestAnimationFrame. Callbacks queued with RequestFrame run on the next
// call to Loop.Run, which the host makes once per refresh.
package frame

// ID identifies a pending frame request. The zero ID is never issued.
type ID uint64

// Scheduler is implemented by anything that can defer work to the next
// display refresh.
type Scheduler interface {
	RequestFrame(fn func()) ID
	CancelFrame(id ID)
}

type request struct {
	id ID
	fn func()
}

// Loop is a single-threaded frame scheduler. It must only be used from the
// goroutine that calls Run.
type Loop struct {
	nextID  ID
	pending []request
	// cancelled holds ids cancelled while their batch is running.
	cancelled map[ID]struct{}
	frames    uint64
}

func NewLoop() *Loop {
	return &Loop{cancelled: map[ID]struct{}{}}
}

// RequestFrame queues fn for the next refresh and returns its ID.
func (l *Loop) RequestFrame(fn func()) ID {
	l.nextID++
	l.pending = append(l.pending, request{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame drops a pending request. Unknown or already-run ids are ignored.
func (l *Loop) CancelFrame(id ID) {
	if id == 0 {
		return
	}
	for i, r := range l.pending {
		if r.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	l.cancelled[id] = struct{}{}
}

// Run executes every callback queued before the call. Callbacks requested
// while Run is executing are deferred to the next refresh.
func (l *Loop) Run() {
	batch := l.pending
	l.pending = nil
	for _, r := range batch {
		if _, ok := l.cancelled[r.id]; ok {
			continue
		}
		r.fn()
	}
	clear(l.cancelled)
	l.frames++
}

// Pending reports how many callbacks are waiting for the next refresh.
func (l *Loop) Pending() int { return len(l.pending) }

// Frames reports how many refreshes have been run.
func (l *Loop) Frames() uint64 { return l.frames }
