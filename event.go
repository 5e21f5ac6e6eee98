package linesim

// EventKind is the closed set of event kinds the scheduler dispatches, per
// the external interface in §6 of the specification.
type EventKind int

const (
	// KindGenerateNewJob is the Source's self-addressed trigger: issue one
	// job and, if more remain, reschedule itself.
	KindGenerateNewJob EventKind = iota
	// KindArrive delivers a job to a station (or the Sink).
	KindArrive
	// KindEnd marks the completion of a station's in-progress service.
	KindEnd
	// KindFail transitions a station from Up to Failed.
	KindFail
	// KindRepair transitions a station from Failed back to Up.
	KindRepair
	// KindTriggerMaintenance is the standing maintenance-cycle regenerator;
	// its effect depends on the station's current state.
	KindTriggerMaintenance
	// KindMaintComplete transitions a station from Maintenance back to Up.
	KindMaintComplete
)

// String renders the event kind for logs and state-dump errors.
func (k EventKind) String() string {
	switch k {
	case KindGenerateNewJob:
		return "generateNewJob"
	case KindArrive:
		return "arrive"
	case KindEnd:
		return "end"
	case KindFail:
		return "fail"
	case KindRepair:
		return "repair"
	case KindTriggerMaintenance:
		return "triggerMaintenance"
	case KindMaintComplete:
		return "maintComplete"
	default:
		return "unknown"
	}
}

// target is implemented by every node that can be the destination of an
// Event: Source, *Station, and *Sink.
type target interface {
	receive(e Event)
	name() string
}

// Event is an immutable record of a single scheduled occurrence. The only
// exception to immutability is the Scheduler's internal bookkeeping, which
// stamps seq on insertion for deterministic tie-breaking; callers never
// mutate an Event once built.
//
// Unlike the system this was distilled from, which mutated and re-inserted
// a single physical "trigger" event for the Source's recurring arrivals,
// this implementation always constructs a fresh Event (§9 design note).
type Event struct {
	From target
	To   target
	Time float64
	Kind EventKind
	Job  *Job

	seq uint64 // assigned by Scheduler.Add; breaks time ties deterministically
}
