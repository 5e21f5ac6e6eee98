package linesim

import "github.com/google/uuid"

// Source is the self-replicating arrival generator of §4.2: it issues N
// jobs total, spaced by an interarrival sampler, into the first station of
// the pipeline.
type Source struct {
	scheduler *Scheduler

	total  uint64
	issued uint64

	interarrival Sampler

	out target

	logger Logger
}

// NewSource returns a Source that will issue total jobs, spaced by draws
// from interarrival, once Start is called.
func NewSource(total uint64, interarrival Sampler, logger Logger) *Source {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &Source{total: total, interarrival: interarrival, logger: logger}
}

func (src *Source) name() string { return "source" }

// Issued returns the number of jobs generated so far.
func (src *Source) Issued() uint64 { return src.issued }

func (src *Source) bind(sched *Scheduler) { src.scheduler = sched }

func (src *Source) setOut(out target) { src.out = out }

// Start schedules the first trigger at time 0 (§4.6 step 6).
func (src *Source) Start() {
	src.scheduler.Add(Event{To: src, Time: src.scheduler.Now(), Kind: KindGenerateNewJob})
}

// receive implements target. The trigger issues one job and, if more
// remain, reschedules itself (§4.2).
func (src *Source) receive(e Event) {
	if e.Kind != KindGenerateNewJob {
		panic(&InvalidTransitionError{Station: src.name(), Event: e.Kind})
	}

	now := src.scheduler.Now()
	src.issued++

	job := &Job{
		ID:        uuid.New(),
		Seq:       src.issued,
		CreatedAt: now,
	}

	src.scheduler.Add(Event{From: src, To: src.out, Time: now, Kind: KindArrive, Job: job})

	if src.issued < src.total {
		next := now + src.interarrival.Sample()
		src.scheduler.Add(Event{To: src, Time: next, Kind: KindGenerateNewJob})
	}
}
