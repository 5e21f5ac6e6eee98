package linesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTarget counts how many times it received each event kind, for
// assertions that don't need full station semantics.
type recordingTarget struct {
	label    string
	received []Event
}

func (r *recordingTarget) receive(e Event) { r.received = append(r.received, e) }
func (r *recordingTarget) name() string    { return r.label }

func TestScheduler_PopOrdersByTimeThenSequence(t *testing.T) {
	s := NewScheduler()
	tgt := &recordingTarget{label: "t"}

	s.Add(Event{To: tgt, Time: 5, Kind: KindArrive})
	s.Add(Event{To: tgt, Time: 1, Kind: KindArrive})
	s.Add(Event{To: tgt, Time: 1, Kind: KindEnd})
	s.Add(Event{To: tgt, Time: 3, Kind: KindArrive})

	var times []float64
	var kinds []EventKind
	for {
		e, ok := s.Pop()
		if !ok {
			break
		}
		times = append(times, e.Time)
		kinds = append(kinds, e.Kind)
	}

	assert.Equal(t, []float64{1, 1, 3, 5}, times)
	// The two time=1 events must come out in insertion order (Arrive then End).
	assert.Equal(t, []EventKind{KindArrive, KindEnd, KindArrive, KindArrive}, kinds)
}

func TestScheduler_ClockMonotonic(t *testing.T) {
	s := NewScheduler()
	tgt := &recordingTarget{label: "t"}
	s.Add(Event{To: tgt, Time: 10, Kind: KindArrive})
	s.Add(Event{To: tgt, Time: 2, Kind: KindArrive})
	s.Add(Event{To: tgt, Time: 7, Kind: KindArrive})

	last := -1.0
	for s.Len() > 0 {
		e, ok := s.Pop()
		require.True(t, ok)
		assert.GreaterOrEqual(t, e.Time, last)
		last = s.Now()
	}
}

func TestScheduler_AddAfterEndOfSimulationIsDropped(t *testing.T) {
	s := NewScheduler()
	tgt := &recordingTarget{label: "t"}
	s.EndOfSimulation = 5
	s.Add(Event{To: tgt, Time: 1, Kind: KindArrive})
	_, _ = s.Pop() // clock -> 1, still < 5

	s.EndOfSimulation = 0 // force clock >= horizon
	s.Add(Event{To: tgt, Time: 100, Kind: KindArrive})
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_CancelEventRemovesFirstMatch(t *testing.T) {
	s := NewScheduler()
	tgt := &recordingTarget{label: "t"}
	s.Add(Event{To: tgt, Time: 5, Kind: KindFail})
	s.Add(Event{To: tgt, Time: 10, Kind: KindFail})

	s.cancelEvent(tgt, KindFail)

	e, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 10.0, e.Time)
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_CancelJobRemovesMatchingEvent(t *testing.T) {
	s := NewScheduler()
	tgt := &recordingTarget{label: "t"}
	jobA := &Job{Seq: 1}
	jobB := &Job{Seq: 2}
	s.Add(Event{To: tgt, Time: 5, Kind: KindEnd, Job: jobA})
	s.Add(Event{To: tgt, Time: 6, Kind: KindEnd, Job: jobB})

	s.cancelJob(tgt, jobA)

	e, ok := s.Pop()
	require.True(t, ok)
	assert.Same(t, jobB, e.Job)
}

func TestScheduler_CancelMissIsSilent(t *testing.T) {
	s := NewScheduler()
	tgt := &recordingTarget{label: "t"}
	s.cancelEvent(tgt, KindFail)
	s.cancelJob(tgt, &Job{})
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_RunRecoversInvalidTransition(t *testing.T) {
	s := NewScheduler()
	bad := &panicTarget{}
	s.Add(Event{To: bad, Time: 0, Kind: KindArrive})

	err := s.Run()
	require.Error(t, err)
	var ite *InvalidTransitionError
	assert.ErrorAs(t, err, &ite)
}

type panicTarget struct{}

func (panicTarget) name() string { return "bad" }
func (panicTarget) receive(e Event) {
	panic(&InvalidTransitionError{Station: "bad", State: StateUp, Event: e.Kind})
}
