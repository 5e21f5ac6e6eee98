package linesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_MarksCompletedOnNthJob(t *testing.T) {
	sched := NewScheduler()
	sink := NewSink(2, nil)
	sink.bind(sched)

	sched.Add(Event{To: sink, Kind: KindArrive, Job: &Job{CreatedAt: 0}, Time: 1})
	sched.Add(Event{To: sink, Kind: KindArrive, Job: &Job{CreatedAt: 0}, Time: 3})
	// an event that would fire after the sink completes
	sched.Add(Event{To: sink, Kind: KindArrive, Job: &Job{CreatedAt: 0}, Time: 5})

	require.NoError(t, sched.Run())

	assert.True(t, sched.Completed())
	assert.Equal(t, uint64(2), sink.JobCount())
	assert.Equal(t, 0, sched.Len(), "Clear must drop the event past completion")
}

func TestSink_MeanSojournAveragesFinishMinusCreated(t *testing.T) {
	sched := NewScheduler()
	sink := NewSink(2, nil)
	sink.bind(sched)

	sched.Add(Event{To: sink, Kind: KindArrive, Job: &Job{CreatedAt: 0}, Time: 2})
	sched.Add(Event{To: sink, Kind: KindArrive, Job: &Job{CreatedAt: 1}, Time: 5})

	require.NoError(t, sched.Run())

	// sojourns: (2-0)=2, (5-1)=4, mean = 3
	assert.Equal(t, 3.0, sink.MeanSojourn())
}

func TestSink_RejectsNonArriveEvent(t *testing.T) {
	sched := NewScheduler()
	sink := NewSink(1, nil)
	sink.bind(sched)
	sched.Add(Event{To: sink, Kind: KindFail})

	err := sched.Run()
	require.Error(t, err)
	var ite *InvalidTransitionError
	assert.ErrorAs(t, err, &ite)
}
