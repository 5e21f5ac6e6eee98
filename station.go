package linesim

import "fmt"

// StationState is the station automaton's four-valued state (§3, §4.4).
//
// The original implementation tracked Blocked as a separate boolean
// alongside a three-valued machine state, but that boolean was never
// observably true at the same time as any state other than Up — so here
// Blocked is folded into the state enum itself as a fourth value, giving
// the transition table in §4.4 a direct one-to-one representation instead
// of a state/flag cross product with unreachable combinations.
type StationState int

const (
	StateUp StationState = iota
	StateFailed
	StateMaintenance
	StateBlocked
)

// String renders the state for logs and InvalidTransitionError state dumps.
func (s StationState) String() string {
	switch s {
	case StateUp:
		return "Up"
	case StateFailed:
		return "Failed"
	case StateMaintenance:
		return "Maintenance"
	case StateBlocked:
		return "Blocked"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Counters accumulates the per-station outputs required by §6: throughput,
// reliability, and utilisation statistics observed over the run.
type Counters struct {
	Arrived      uint64
	Processed    uint64
	Failures     uint64
	Maintenances uint64

	// IdleTime is the cumulative simulation time this station has spent
	// with state == Up and busy == 0.
	IdleTime float64

	CycleTime *DurationQuantiles
	QueueLen  *QueueLengthHistogram
}

func newCounters() Counters {
	return Counters{
		CycleTime: NewDurationQuantiles(),
		QueueLen:  NewQueueLengthHistogram(),
	}
}

// Station is the automaton in §4.4: one server, one BoundedBuffer, and the
// failure/maintenance generators layered on top of plain service.
type Station struct {
	label     string
	scheduler *Scheduler

	in  target
	out target

	buffer *BoundedBuffer

	state StationState
	busy  int

	current   *Job // job currently occupying the server, nil if idle
	preempted *Job // job parked mid-service by a failure or maintenance

	service        Sampler
	mtbf           Sampler
	mttr           Sampler
	maintInterval  Sampler
	maintDuration  Sampler

	counters Counters

	idleOpen  bool
	idleSince float64

	logger Logger
}

// NewStation builds a station with an empty buffer of the given capacity.
// Wiring (in/out neighbours, downstream buffer observer registration) and
// the initial failure/maintenance events are the Topology's responsibility
// (§4.6).
func NewStation(label string, capacity int, service, mtbf, mttr, maintInterval, maintDuration Sampler, logger Logger) *Station {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &Station{
		label:         label,
		buffer:        NewBoundedBuffer(capacity),
		state:         StateUp,
		service:       service,
		mtbf:          mtbf,
		mttr:          mttr,
		maintInterval: maintInterval,
		maintDuration: maintDuration,
		counters:      newCounters(),
		idleOpen:      true,
		logger:        logger,
	}
}

func (s *Station) name() string { return s.label }

// Label returns the station's configured name.
func (s *Station) Label() string { return s.label }

// State returns the station's current automaton state.
func (s *Station) State() StationState { return s.state }

// Counters returns the station's accumulated output statistics. The
// returned value shares the underlying quantile trackers; callers must not
// mutate it.
func (s *Station) Counters() Counters { return s.counters }

// Buffer exposes the station's bounded buffer, primarily so Topology can
// register it with the upstream neighbour as a BackpressureListener target.
func (s *Station) Buffer() *BoundedBuffer { return s.buffer }

// setNeighbours wires this station's upstream and downstream handles.
// Called once by Topology during construction.
func (s *Station) setNeighbours(in, out target) {
	s.in = in
	s.out = out
}

// OnBlock implements BackpressureListener: fired by this station's
// downstream neighbour's buffer when it fills to capacity (§4.3).
func (s *Station) OnBlock() {
	s.state = StateBlocked
	s.reconcileIdle(s.scheduler.Now())
	s.logger.Log(Entry{Level: LevelDebug, Category: CategoryStation, Station: s.label, Time: s.scheduler.Now(), Message: "blocked by downstream"})
}

// OnUnblock implements BackpressureListener: fired by this station's
// downstream neighbour's buffer when it drops below capacity (§4.3).
func (s *Station) OnUnblock() {
	if s.state != StateBlocked {
		return
	}
	s.state = StateUp
	s.reconcileIdle(s.scheduler.Now())
	s.logger.Log(Entry{Level: LevelDebug, Category: CategoryStation, Station: s.label, Time: s.scheduler.Now(), Message: "unblocked by downstream"})
	s.tryStart()
}

// bind attaches the owning scheduler; called once by Topology.
func (s *Station) bind(sched *Scheduler) {
	s.scheduler = sched
}

// scheduleInitialEvents seeds the first failure and maintenance-trigger
// events for this station (§4.6 step 5, §4.4 "Failure/maintenance
// generation").
func (s *Station) scheduleInitialEvents() {
	now := s.scheduler.Now()
	s.scheduler.Add(Event{To: s, Time: now + s.mtbf.Sample(), Kind: KindFail})
	s.scheduler.Add(Event{To: s, Time: now + s.maintInterval.Sample(), Kind: KindTriggerMaintenance})
}

// receive implements target: dispatches an inbound event to the matching
// handler (§4.4).
func (s *Station) receive(e Event) {
	switch e.Kind {
	case KindArrive:
		s.handleArrive(e.Job)
	case KindEnd:
		s.handleEnd(e.Job)
	case KindFail:
		s.handleFail()
	case KindRepair:
		s.handleRepair()
	case KindTriggerMaintenance:
		s.handleTriggerMaintenance()
	case KindMaintComplete:
		s.handleMaintComplete()
	default:
		panic(&InvalidTransitionError{Station: s.label, State: s.state, Event: e.Kind})
	}
}

// reconcileIdle folds the open idle window (if any) into IdleTime up to
// now, then re-evaluates whether a window should be open given the current
// state and busy count. Called at the end of every handler that can change
// state or busy, so idle time only ever accrues while state == Up and
// busy == 0 (see DESIGN.md for why this departs from the traced original
// implementation).
func (s *Station) reconcileIdle(now float64) {
	if s.idleOpen {
		s.counters.IdleTime += now - s.idleSince
		s.idleOpen = false
	}
	if s.state == StateUp && s.busy == 0 {
		s.idleOpen = true
		s.idleSince = now
	}
}

// handleArrive implements §4.4 "Arrival handling".
func (s *Station) handleArrive(job *Job) {
	now := s.scheduler.Now()
	s.counters.Arrived++
	job.ArrivalTime = now
	job.ServiceTime = s.service.Sample()

	queueLen := s.busy + s.buffer.Size()
	job.log(now, TagArrive, queueLen)
	s.counters.QueueLen.Observe(queueLen)

	s.buffer.Push(job)
	s.tryStart()
}

// tryStart implements §4.4 "tryStart preconditions".
func (s *Station) tryStart() {
	if s.buffer.Size() == 0 || s.busy != 0 || s.state != StateUp {
		return
	}
	job := s.buffer.PopFront()
	s.busy = 1
	s.current = job
	s.startService(job)
}

// startService implements the startService transition (Up -> Up).
func (s *Station) startService(job *Job) {
	now := s.scheduler.Now()
	s.reconcileIdle(now)
	job.log(now, TagStart, s.buffer.Size())
	s.scheduler.Add(Event{To: s, Time: now + job.ServiceTime, Kind: KindEnd, Job: job})
}

// handleEnd implements §4.4 "End-of-service".
func (s *Station) handleEnd(job *Job) {
	now := s.scheduler.Now()
	job.log(now, TagDepart, s.buffer.Size())
	s.counters.Processed++
	s.counters.CycleTime.Observe(now - job.ArrivalTime)

	s.busy = 0
	s.current = nil

	s.scheduler.Add(Event{From: s, To: s.out, Time: now, Kind: KindArrive, Job: job})

	s.reconcileIdle(now)
	s.tryStart()
}

// handleFail implements the fail transition (Up -> Failed).
func (s *Station) handleFail() {
	if s.state != StateUp {
		panic(&InvalidTransitionError{Station: s.label, State: s.state, Event: KindFail})
	}
	now := s.scheduler.Now()
	s.counters.Failures++
	s.state = StateFailed
	s.reconcileIdle(now)

	if s.busy == 1 {
		s.preemptCurrent()
	}
	repairAt := now + s.mttr.Sample()
	s.scheduler.Add(Event{To: s, Time: repairAt, Kind: KindRepair})
	s.logger.Log(Entry{Level: LevelWarn, Category: CategoryStation, Station: s.label, Time: now, Message: fmt.Sprintf("failed, repair scheduled at %.4f", repairAt)})
}

// handleRepair implements the repair transition (Failed -> Up).
func (s *Station) handleRepair() {
	if s.state != StateFailed {
		panic(&InvalidTransitionError{Station: s.label, State: s.state, Event: KindRepair})
	}
	now := s.scheduler.Now()
	s.state = StateUp
	s.reconcileIdle(now)
	s.resumeOrStart()
	s.scheduler.Add(Event{To: s, Time: now + s.mtbf.Sample(), Kind: KindFail})
	s.logger.Log(Entry{Level: LevelInfo, Category: CategoryStation, Station: s.label, Time: now, Message: "repaired"})
}

// handleTriggerMaintenance implements §4.4 "Maintenance trigger policy".
func (s *Station) handleTriggerMaintenance() {
	switch s.state {
	case StateUp:
		s.maintain()
	case StateFailed:
		s.scheduler.cancelEvent(s, KindRepair)
		s.interrep()
	case StateBlocked:
		// Skipped this cycle; the standing regenerator scheduled at the
		// previous maintComplete is the only source of a future trigger.
	default:
		panic(&InvalidTransitionError{Station: s.label, State: s.state, Event: KindTriggerMaintenance})
	}
}

// maintain implements the maintain transition (Up -> Maintenance).
func (s *Station) maintain() {
	now := s.scheduler.Now()
	s.counters.Maintenances++
	s.scheduler.cancelEvent(s, KindFail)
	s.state = StateMaintenance
	s.reconcileIdle(now)

	if s.busy == 1 {
		s.preemptCurrent()
	}
	s.scheduler.Add(Event{To: s, Time: now + s.maintDuration.Sample(), Kind: KindMaintComplete})
	s.logger.Log(Entry{Level: LevelInfo, Category: CategoryStation, Station: s.label, Time: now, Message: "entering maintenance"})
}

// interrep implements the interrep transition (Failed -> Maintenance).
func (s *Station) interrep() {
	now := s.scheduler.Now()
	s.counters.Maintenances++
	s.state = StateMaintenance
	s.reconcileIdle(now)
	s.scheduler.Add(Event{To: s, Time: now + s.maintDuration.Sample(), Kind: KindMaintComplete})
}

// handleMaintComplete implements the maintComplete transition
// (Maintenance -> Up).
func (s *Station) handleMaintComplete() {
	if s.state != StateMaintenance {
		panic(&InvalidTransitionError{Station: s.label, State: s.state, Event: KindMaintComplete})
	}
	now := s.scheduler.Now()
	s.state = StateUp
	s.reconcileIdle(now)
	s.resumeOrStart()
	s.scheduler.Add(Event{To: s, Time: now + s.mtbf.Sample(), Kind: KindFail})
	s.scheduler.Add(Event{To: s, Time: now + s.maintInterval.Sample(), Kind: KindTriggerMaintenance})
	s.logger.Log(Entry{Level: LevelInfo, Category: CategoryStation, Station: s.label, Time: now, Message: "maintenance complete"})
}

// preemptCurrent implements the "On fail or maintain while a job is in
// service" interruption discipline (§4.4). The end-of-service event for
// the current job is cancelled and the job is parked as preempted; busy
// remains 1 until it eventually resumes and departs.
func (s *Station) preemptCurrent() {
	job := s.current
	job.Interrupted = true
	s.scheduler.cancelJob(s, job)
	s.preempted = job
	s.current = nil
}

// resumeOrStart implements the "On repair or maintComplete" half of the
// interruption discipline: resume a parked job with its full remaining
// service time (preempt-resume, per §9's resolved open question), or, if
// nothing was preempted, pull the next job from the buffer.
func (s *Station) resumeOrStart() {
	if s.preempted != nil {
		job := s.preempted
		s.preempted = nil
		s.current = job
		s.startService(job)
		return
	}
	s.tryStart()
}
