package linesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleStationConfig(n uint64, lambda, mu float64, capacity int) Config {
	return Config{
		N:             n,
		Lambda:        lambda,
		Seed:          7,
		Mu:            []float64{mu},
		Capacity:      []int{capacity},
		MTBF:          []float64{0}, // disabled: never fails
		MTTR:          []float64{0},
		MaintInterval: []float64{0}, // disabled: never triggers
		MaintDuration: []float64{0},
	}
}

func TestNewTopology_RejectsMismatchedVectorLengths(t *testing.T) {
	cfg := singleStationConfig(10, 1, 2, 5)
	cfg.MTBF = []float64{1, 2} // wrong length
	_, err := NewTopology(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputShape)
}

func TestNewTopology_RejectsZeroCapacity(t *testing.T) {
	cfg := singleStationConfig(10, 1, 2, 0)
	_, err := NewTopology(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputShape)
}

func TestNewTopology_RejectsNonPositiveN(t *testing.T) {
	cfg := singleStationConfig(0, 1, 2, 5)
	_, err := NewTopology(cfg)
	require.Error(t, err)
}

func TestTopology_ConservationAllJobsReachSink(t *testing.T) {
	cfg := singleStationConfig(2000, 1.0, 1.3, 10)
	topo, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topo.Run())

	assert.Equal(t, uint64(2000), topo.Sink().JobCount())
	assert.Equal(t, uint64(2000), topo.Stations()[0].Counters().Arrived)
}

func TestTopology_CapacityNeverExceeded(t *testing.T) {
	// A deliberately undersized capacity and a service rate slower than
	// arrivals forces sustained queueing, exercising the backpressure path
	// without ever letting buffer size exceed capacity.
	cfg := singleStationConfig(500, 5.0, 1.0, 3)
	topo, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topo.Run())
	// Run completed without panicking from an InvalidTransitionError, and
	// BoundedBuffer itself can never exceed capacity by construction
	// (push is only ever called after tryStart's buffer-bounded pop, and
	// the block signal fires at the exact capacity boundary); processed
	// count bounds that no jobs were lost.
	assert.LessOrEqual(t, topo.Stations()[0].Counters().Processed, uint64(500))
}

func TestTopology_DeterministicSeedReproducesRun(t *testing.T) {
	cfg := singleStationConfig(1000, 1.0, 1.5, 8)

	topoA, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topoA.Run())

	topoB, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topoB.Run())

	assert.Equal(t, topoA.Sink().MeanSojourn(), topoB.Sink().MeanSojourn())
	assert.Equal(t, topoA.Now(), topoB.Now())
	assert.Equal(t, topoA.Stations()[0].Counters().Processed, topoB.Stations()[0].Counters().Processed)
}

func TestTopology_SinkCompletionStopsScheduler(t *testing.T) {
	cfg := singleStationConfig(100, 1.0, 2.0, 10)
	topo, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topo.Run())

	assert.Equal(t, uint64(100), topo.Sink().JobCount())
	assert.Equal(t, 0, topo.scheduler.Len(), "no further events may be pending once the sink completes")
}

func TestTopology_MeanSojournApproximatesMM1(t *testing.T) {
	// Scenario 1 (§8): single station, no failures, no maintenance.
	// Expect mean sojourn near 1/(mu-lambda) within a loose tolerance (a
	// unit test is not the place for a tight statistical bound, but a
	// gross sanity check catches a wrong formula outright).
	lambda, mu := 1.0, 1.3
	cfg := singleStationConfig(20000, lambda, mu, 1000)
	topo, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topo.Run())

	want := 1 / (mu - lambda)
	got := topo.Sink().MeanSojourn()
	assert.InDelta(t, want, got, want*0.25)
}

func TestTopology_TwoStationsProcessedCountsNonIncreasing(t *testing.T) {
	// Without failures or maintenance, the upstream station's processed
	// count must never fall below the downstream station's, since every
	// job the second station processes first passed through the first.
	cfg := Config{
		N:             2000,
		Lambda:        1.0,
		Seed:          3,
		Mu:            []float64{1.1, 1.1},
		Capacity:      []int{5, 5},
		MTBF:          []float64{0, 0},
		MTTR:          []float64{0, 0},
		MaintInterval: []float64{0, 0},
		MaintDuration: []float64{0, 0},
	}
	topo, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topo.Run())

	first := topo.Stations()[0].Counters().Processed
	second := topo.Stations()[1].Counters().Processed
	assert.GreaterOrEqual(t, first, second)
}

func TestTopology_FailureCadenceMatchesConfiguredMTBF(t *testing.T) {
	// Scenario 2's own failure parameters (§8): MTBF=50, MTTR=1. MTBF and
	// MTTR are mean times (glossary: "mean time between failures, mean
	// time to repair"), not rates, so the observed mean failure cycle
	// (elapsed time / failure count) should land near MTBF+MTTR = 51 — a
	// samplerForMean that inverted mean and rate would instead produce a
	// cadence around 1/MTBF + 1/MTTR = 1.02, far outside the tolerance.
	mtbf, mttr := 50.0, 1.0
	cfg := Config{
		N:             20000,
		Lambda:        1.0,
		Seed:          11,
		Mu:            []float64{1.3},
		Capacity:      []int{10},
		MTBF:          []float64{mtbf},
		MTTR:          []float64{mttr},
		MaintInterval: []float64{0},
		MaintDuration: []float64{0},
	}
	topo, err := NewTopology(cfg)
	require.NoError(t, err)
	require.NoError(t, topo.Run())

	failures := topo.Stations()[0].Counters().Failures
	require.Greater(t, failures, uint64(10), "need enough failures for a stable cadence estimate")

	meanCycle := topo.Now() / float64(failures)
	want := mtbf + mttr
	assert.InDelta(t, want, meanCycle, want*0.5)
}
