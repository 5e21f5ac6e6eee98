package linesim

import "github.com/google/uuid"

// AuditTag marks the kind of event recorded in a Job's audit log (§3).
type AuditTag byte

const (
	TagArrive AuditTag = 'a'
	TagStart  AuditTag = 's'
	TagDepart AuditTag = 'd'
)

func (t AuditTag) String() string { return string(rune(t)) }

// AuditEntry is one append-only record of a job's passage through a
// station: the time it happened, what happened, and the queue length
// observed at that instant (§3 Job).
type AuditEntry struct {
	Time     float64
	Tag      AuditTag
	QueueLen int
}

// Job is a passive record threaded through the pipeline: created by the
// Source, stamped by each Station it passes through, and finally consumed
// by the Sink. At any instant it is owned by exactly one node (§5 Shared
// resource policy).
type Job struct {
	// ID is an externally stable identifier, decorative only: it never
	// affects simulation semantics.
	ID uuid.UUID
	// Seq is the sequential position in which the Source issued this job
	// (1, 2, ...). The Scheduler does not read it: equal-time events are
	// ordered by the Scheduler's own insertion counter.
	Seq uint64

	CreatedAt   float64 // stamped once, by the Source
	ArrivalTime float64 // re-stamped at each station on arrival
	ServiceTime float64 // re-sampled at each station on arrival

	FinishTime float64 // stamped by the Sink

	// Interrupted is set the first time a failure or maintenance event
	// preempts this job's service. It is never cleared, even after the job
	// resumes and eventually departs.
	Interrupted bool

	Audit []AuditEntry
}

// log appends an audit entry. Unexported: only the core nodes that own a
// Job at a given instant append to its log.
func (j *Job) log(time float64, tag AuditTag, queueLen int) {
	j.Audit = append(j.Audit, AuditEntry{Time: time, Tag: tag, QueueLen: queueLen})
}
