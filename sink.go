package linesim

// Sink is the terminal collector of §4.5: it stamps each arriving job's
// finish time, accumulates sojourn statistics, and declares the simulation
// complete once the N-th job (N = Source's total) has arrived.
type Sink struct {
	scheduler *Scheduler

	total     uint64
	collected uint64

	sojourn *DurationQuantiles

	logger Logger
}

// NewSink returns a Sink that completes the run after total jobs arrive.
func NewSink(total uint64, logger Logger) *Sink {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &Sink{total: total, sojourn: NewDurationQuantiles(), logger: logger}
}

func (sk *Sink) name() string { return "sink" }

func (sk *Sink) bind(sched *Scheduler) { sk.scheduler = sched }

// JobCount returns how many jobs have reached the Sink so far.
func (sk *Sink) JobCount() uint64 { return sk.collected }

// MeanSojourn returns the mean end-to-end sojourn (finishTime - createdAt)
// across every job collected so far.
func (sk *Sink) MeanSojourn() float64 { return sk.sojourn.Mean() }

// SojournQuantiles exposes the full end-to-end sojourn distribution.
func (sk *Sink) SojournQuantiles() *DurationQuantiles { return sk.sojourn }

// TotalElapsed returns the scheduler's current clock. Once the Sink has
// completed the run and cleared the scheduler, that is the time the last
// job arrived; read mid-run, it is the time of the most recently
// dispatched event, which need not be a Sink arrival.
func (sk *Sink) TotalElapsed() float64 {
	if sk.scheduler == nil {
		return 0
	}
	return sk.scheduler.Now()
}

// receive implements target: the only event kind a Sink accepts is an
// arrival (§4.5).
func (sk *Sink) receive(e Event) {
	if e.Kind != KindArrive {
		panic(&InvalidTransitionError{Station: sk.name(), Event: e.Kind})
	}

	now := sk.scheduler.Now()
	job := e.Job
	job.FinishTime = now
	sk.collected++
	sk.sojourn.Observe(job.FinishTime - job.CreatedAt)

	if sk.collected >= sk.total {
		sk.scheduler.MarkCompleted()
		sk.scheduler.Clear()
	}
}
