package replicate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allardneijmeijer/linesim"
)

func testConfig() linesim.Config {
	return linesim.Config{
		N:             500,
		Lambda:        1.0,
		Seed:          9,
		Mu:            []float64{1.5},
		Capacity:      []int{10},
		MTBF:          []float64{0},
		MTTR:          []float64{0},
		MaintInterval: []float64{0},
		MaintDuration: []float64{0},
	}
}

func TestRun_ProducesOneResultPerReplication(t *testing.T) {
	results, summary, err := Run(context.Background(), testConfig(), 5)
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, 5, summary.Replications)
	assert.Greater(t, summary.Mean, 0.0)
}

func TestRun_DistinctReplicationsUseDistinctSeeds(t *testing.T) {
	results, _, err := Run(context.Background(), testConfig(), 3)
	require.NoError(t, err)

	seen := map[int64]bool{}
	for _, r := range results {
		assert.False(t, seen[r.Seed], "replication seeds must be distinct")
		seen[r.Seed] = true
	}
}

func TestRun_SingleReplicationHasNoConfidenceInterval(t *testing.T) {
	_, summary, err := Run(context.Background(), testConfig(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.CI95)
}

func TestRun_PropagatesInputShapeError(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = []int{0}
	_, _, err := Run(context.Background(), cfg, 2)
	assert.Error(t, err)
}

func TestRun_DefaultsNonPositiveCountToOne(t *testing.T) {
	results, summary, err := Run(context.Background(), testConfig(), 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, summary.Replications)
}
