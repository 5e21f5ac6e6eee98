package linesim

import (
	"math"
	"strconv"
)

// Config describes a linear chain of M stations (§6 External Interfaces).
// Every per-station vector must have length M; NewTopology validates this
// before building anything (§4.6 precondition check, §7 InputShape).
type Config struct {
	// N is the total number of jobs the Source will issue.
	N uint64
	// Lambda is the arrival rate; the interarrival sampler draws
	// Exponential(Lambda) unless InterarrivalSampler is set.
	Lambda float64
	// Seed seeds every sampler this Config constructs directly. Two
	// Configs built with the same Seed and parameters produce bit-for-bit
	// identical runs (§8 scenario 5).
	Seed int64

	// Mu, Capacity, MTBF, MTTR, MaintInterval, MaintDuration are per-station
	// vectors, each of length M = number of stations.
	Mu            []float64
	Capacity      []int
	MTBF          []float64
	MTTR          []float64
	MaintInterval []float64
	MaintDuration []float64

	// InterarrivalSampler overrides the default Exponential(Lambda) source
	// sampler, for callers that need a non-exponential arrival process.
	InterarrivalSampler Sampler
}

// Validate checks the InputShape preconditions of §4.6/§7: equal vector
// lengths, a positive N, a positive Lambda (not checked when
// InterarrivalSampler is set), and capacities of at least 1.
func (c Config) Validate() error {
	m := len(c.Mu)
	if m == 0 {
		return inputShapeErrorf("at least one station is required")
	}
	for _, v := range [][]float64{c.MTBF, c.MTTR, c.MaintInterval, c.MaintDuration} {
		if len(v) != m {
			return inputShapeErrorf("parameter vectors must all have length %d, got %d", m, len(v))
		}
	}
	if len(c.Capacity) != m {
		return inputShapeErrorf("capacity vector must have length %d, got %d", m, len(c.Capacity))
	}
	if c.N == 0 {
		return inputShapeErrorf("N must be positive")
	}
	if c.Lambda <= 0 && c.InterarrivalSampler == nil {
		return inputShapeErrorf("lambda must be positive")
	}
	for i, cap := range c.Capacity {
		if cap < 1 {
			return inputShapeErrorf("station %d: capacity must be >= 1, got %d", i, cap)
		}
	}
	return nil
}

// Topology is a fully wired pipeline: one Source, M Stations, one Sink,
// sharing a single Scheduler (§4.6, §5).
type Topology struct {
	scheduler *Scheduler
	source    *Source
	stations  []*Station
	sink      *Sink
}

// NewTopology validates cfg and builds the wired pipeline described in
// §4.6: Source -> station[0] -> ... -> station[M-1] -> Sink, downstream
// buffers observed by their upstream neighbour, and initial failure and
// maintenance events seeded for every station.
func NewTopology(cfg Config, opts ...Option) (*Topology, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := newTopologyOptions()
	for _, opt := range opts {
		opt(o)
	}

	sched := NewScheduler()
	sched.Logger = o.logger

	m := len(cfg.Mu)

	interarrival := cfg.InterarrivalSampler
	if interarrival == nil {
		interarrival = NewExponential(cfg.Lambda, cfg.Seed)
	}
	source := NewSource(cfg.N, interarrival, o.logger)
	source.bind(sched)

	stations := make([]*Station, m)
	for i := 0; i < m; i++ {
		seedBase := cfg.Seed + int64(i)*7 + 1
		stations[i] = NewStation(
			stationLabel(i),
			cfg.Capacity[i],
			samplerFor(cfg.Mu[i], seedBase),
			samplerForMean(cfg.MTBF[i], seedBase+1),
			samplerForMean(cfg.MTTR[i], seedBase+2),
			samplerForMean(cfg.MaintInterval[i], seedBase+3),
			samplerForMean(cfg.MaintDuration[i], seedBase+4),
			o.logger,
		)
		stations[i].bind(sched)
	}

	sink := NewSink(cfg.N, o.logger)
	sink.bind(sched)

	// Wire out/in links: Source -> station[0] -> ... -> station[M-1] -> Sink.
	source.setOut(stations[0])
	for i := 0; i < m; i++ {
		var in target = source
		if i > 0 {
			in = stations[i-1]
		}
		var out target = sink
		if i < m-1 {
			out = stations[i+1]
		}
		stations[i].setNeighbours(in, out)
	}

	// Downstream buffer signals backpressure upstream (§4.6 step 4).
	for i := 1; i < m; i++ {
		stations[i].Buffer().Register(stations[i-1])
	}

	for _, st := range stations {
		st.scheduleInitialEvents()
	}

	return &Topology{scheduler: sched, source: source, stations: stations, sink: sink}, nil
}

// samplerFor interprets a rate value (Mu, Lambda) as an Exponential sampler
// with that rate when it is finite and positive, and a fixed never-fires
// sampler for the boundary case a caller uses to mean "disabled" (§6: "each
// a non-negative real or a sampler object").
func samplerFor(rate float64, seed int64) Sampler {
	if rate <= 0 {
		return NewFixed(math.Inf(1))
	}
	return NewExponential(rate, seed)
}

// samplerForMean interprets a mean-time value (MTBF, MTTR, MaintInterval,
// MaintDuration, per the glossary: "mean time between failures"/"mean time
// to repair") as an Exponential sampler whose mean is that value, and a
// fixed never-fires sampler for the boundary case of a zero or negative
// mean meaning "disabled" (e.g. MTBF=0 never fails, per §8 scenario 3's
// MTBF=+Inf also disabling failures via an always-infinite sample). A
// plain NewExponential(rate, seed) cannot be reused directly here, since its
// rate IS 1/mean: passing a mean straight through as a rate would invert it.
func samplerForMean(mean float64, seed int64) Sampler {
	if mean <= 0 || math.IsInf(mean, 1) {
		return NewFixed(math.Inf(1))
	}
	return NewExponential(1/mean, seed)
}

func stationLabel(i int) string {
	return "station[" + strconv.Itoa(i) + "]"
}

// Run starts the Source and drives the scheduler to completion (§4.6 steps
// 6-7). It returns an error only for an InvalidTransitionError surfaced
// from a station's automaton (§7); a normal run that empties the queue, or
// one the Sink marks complete, returns nil.
func (t *Topology) Run() error {
	t.source.Start()
	return t.scheduler.Run()
}

// Stations returns the topology's stations in pipeline order.
func (t *Topology) Stations() []*Station { return t.stations }

// Sink returns the topology's terminal collector.
func (t *Topology) Sink() *Sink { return t.sink }

// Source returns the topology's arrival generator.
func (t *Topology) Source() *Source { return t.source }

// Now returns the current simulation clock.
func (t *Topology) Now() float64 { return t.scheduler.Now() }
