// Package linesim implements a discrete-event simulator for a linear chain
// of single-server stations processing a stream of jobs.
//
// # Architecture
//
// The simulator is built around a [Scheduler] core that orders pending
// [Event] values by simulation time and dispatches each to its target. A
// [Topology] wires a [Source] into a chain of [Station] values, terminated
// by a [Sink]. Each [Station] is a finite-state machine ([StationState])
// that alternates between serving a job, recovering from a failure,
// undergoing scheduled maintenance, and being blocked by a downstream
// [BoundedBuffer] at capacity.
//
// # Randomness
//
// Interarrival times, service times, time-to-failure, time-to-repair, and
// maintenance scheduling are all obtained through the [Sampler] interface,
// so the core never depends on a concrete distribution. [NewExponential]
// and [NewFixed] provide the two samplers a [Topology] needs out of the box.
//
// # Concurrency
//
// A single [Topology]/[Scheduler] pair is a single-threaded cooperative
// event loop: [Scheduler.Run] is the only active loop, and every handler
// runs to completion before the next event is dispatched. There is no lock
// discipline inside this package; concurrency, where it exists (see the
// sibling replicate package), runs multiple wholly independent Topology
// instances rather than sharing state across goroutines.
//
// # Usage
//
//	cfg := linesim.Config{
//	    N:             10_000,
//	    Lambda:        1.0,
//	    Seed:          1,
//	    Mu:            []float64{1.3},
//	    Capacity:      []int{10},
//	    MTBF:          []float64{0}, // 0 disables failures for this station
//	    MTTR:          []float64{0},
//	    MaintInterval: []float64{0}, // 0 disables maintenance for this station
//	    MaintDuration: []float64{0},
//	}
//	topo, err := linesim.NewTopology(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := topo.Run(); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(topo.Sink().MeanSojourn())
package linesim
