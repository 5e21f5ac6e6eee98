package linesim

// BackpressureListener is implemented by anything that needs to react to a
// BoundedBuffer crossing its capacity threshold — in this module, always
// the upstream Station (§4.3, §4.6 step 4). Modelled as an explicit
// interface rather than inheritance, per the teacher's observer idiom
// (registry.go's weak-pointer registry for promises uses the same
// register/notify shape, simplified here since a buffer has a small,
// static set of observers rather than an unbounded promise population).
type BackpressureListener interface {
	OnBlock()
	OnUnblock()
}

// BoundedBuffer is a FIFO ordered by job arrival time at the owning
// station, with a fixed capacity K (§3, §4.3).
//
// Jobs are always pushed in the order their arrival events are dispatched,
// and the scheduler dispatches in non-decreasing time order (§5), so a
// plain slice-backed queue already preserves arrival-time order — no sorted
// container is needed here, unlike the original implementation's
// SortedSet-backed queue (see DESIGN.md).
type BoundedBuffer struct {
	capacity  int
	jobs      []*Job
	observers []BackpressureListener
}

// NewBoundedBuffer creates an empty buffer with the given capacity. capacity
// must be >= 1; callers are expected to have already validated this via
// Config.Validate / NewTopology's input-shape check.
func NewBoundedBuffer(capacity int) *BoundedBuffer {
	return &BoundedBuffer{capacity: capacity}
}

// Capacity returns K.
func (b *BoundedBuffer) Capacity() int { return b.capacity }

// Size returns the current number of queued jobs.
func (b *BoundedBuffer) Size() int { return len(b.jobs) }

// Register adds l as an observer of this buffer's block/unblock signals.
func (b *BoundedBuffer) Register(l BackpressureListener) {
	b.observers = append(b.observers, l)
}

// Push appends job to the tail of the FIFO. If this push causes size to
// reach capacity, every registered observer's OnBlock fires synchronously,
// exactly once, before Push returns (§3 invariant ii, §5 synchronous
// notification).
func (b *BoundedBuffer) Push(job *Job) {
	b.jobs = append(b.jobs, job)
	if len(b.jobs) == b.capacity {
		for _, o := range b.observers {
			o.OnBlock()
		}
	}
}

// PopFront removes and returns the head of the FIFO. If this pop causes
// size to drop below capacity from exactly capacity, every registered
// observer's OnUnblock fires synchronously before PopFront returns.
// PopFront must not be called on an empty buffer.
func (b *BoundedBuffer) PopFront() *Job {
	wasFull := len(b.jobs) == b.capacity
	job := b.jobs[0]
	b.jobs = b.jobs[1:]
	if wasFull && len(b.jobs) < b.capacity {
		for _, o := range b.observers {
			o.OnUnblock()
		}
	}
	return job
}
