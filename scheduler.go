package linesim

import (
	"container/heap"
	"math"
)

// eventHeap is a time-ordered min-heap of pending events, broken by
// insertion sequence on ties. Modelled directly on the teacher's timerHeap
// (container/heap.Interface over a slice of scheduled occurrences), extended
// with the seq field the specification requires for deterministic tie-break
// (§5 Ordering guarantees).
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Scheduler is the time-ordered set of pending events and the owner of the
// monotonic simulation clock. It is the sole active loop in the simulator;
// every mutation of simulator state happens synchronously inside a call to
// Scheduler.Run, on a single goroutine (§5).
type Scheduler struct {
	events eventHeap
	nextSeq uint64
	clock   float64

	// EndOfSimulation is the horizon from which on Add silently drops
	// events, i.e. once clock >= EndOfSimulation (§4.1 LateInsertion, §7).
	// Defaults to +Inf: unbounded.
	EndOfSimulation float64

	completed bool

	// Logger receives scheduler-level diagnostics. Defaults to a no-op
	// logger; see WithLogger.
	Logger Logger
}

// NewScheduler creates a Scheduler with an unbounded horizon.
func NewScheduler() *Scheduler {
	return &Scheduler{
		EndOfSimulation: math.Inf(1),
		Logger:          NewNoOpLogger(),
	}
}

// Now returns the current simulation clock value.
func (s *Scheduler) Now() float64 { return s.clock }

// Completed reports whether the Sink has signalled simulation completion.
func (s *Scheduler) Completed() bool { return s.completed }

// MarkCompleted sets the completed flag, causing Run to stop after the
// current dispatch returns. Called by the Sink upon receiving the final
// job (§4.5).
func (s *Scheduler) MarkCompleted() { s.completed = true }

// Add inserts e if the clock has not yet reached EndOfSimulation, silently
// dropping it otherwise (§4.1 LateInsertion, §7). The insertion sequence
// number used for tie-breaking is assigned here.
func (s *Scheduler) Add(e Event) {
	if s.clock >= s.EndOfSimulation {
		return
	}
	e.seq = s.nextSeq
	s.nextSeq++
	heap.Push(&s.events, e)
}

// Pop removes and returns the earliest pending event, advancing the clock
// to its time. The clock never decreases. The caller is responsible for
// dispatch; Run does this automatically.
func (s *Scheduler) Pop() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	e := heap.Pop(&s.events).(Event)
	s.clock = e.Time
	return e, true
}

// Clear discards every pending event, used by the Sink to short-circuit
// shutdown once the final job has arrived (§4.1, §4.5).
func (s *Scheduler) Clear() {
	s.events = s.events[:0]
}

// Len reports the number of pending events.
func (s *Scheduler) Len() int { return len(s.events) }

// cancelEvent removes the first pending event targeting tgt whose kind
// equals kind. Silent no-op if none match (§4.1 cancelEvent, §7
// CancellationMiss).
func (s *Scheduler) cancelEvent(tgt target, kind EventKind) {
	for i, e := range s.events {
		if e.To == tgt && e.Kind == kind {
			heap.Remove(&s.events, i)
			return
		}
	}
}

// cancelJob removes the first pending event targeting tgt that carries job.
// Silent no-op if none match (§4.1 cancelJob, §7 CancellationMiss).
func (s *Scheduler) cancelJob(tgt target, job *Job) {
	for i, e := range s.events {
		if e.To == tgt && e.Job == job {
			heap.Remove(&s.events, i)
			return
		}
	}
}

// Run repeatedly pops and dispatches events until the queue empties or the
// Sink sets completed. A panic raised by a station that detects an invalid
// transition (*InvalidTransitionError) is recovered here and returned as an
// error instead of crashing the process (§7 propagation); any other panic
// is re-raised.
func (s *Scheduler) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ite, ok := r.(*InvalidTransitionError); ok {
				s.Logger.Log(Entry{Level: LevelError, Category: CategoryScheduler, Message: "invalid transition", Err: ite})
				err = ite
				return
			}
			panic(r)
		}
	}()

	for !s.completed {
		e, ok := s.Pop()
		if !ok {
			break
		}
		e.To.receive(e)
	}
	return nil
}
