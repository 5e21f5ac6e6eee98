package linesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExponentialSampler_NonNegativeAndSeeded(t *testing.T) {
	a := NewExponential(2.0, 42)
	b := NewExponential(2.0, 42)
	for i := 0; i < 100; i++ {
		x := a.Sample()
		y := b.Sample()
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Equal(t, x, y, "identical seed must reproduce identical stream")
	}
}

func TestExponentialSampler_DistinctSeedsDiverge(t *testing.T) {
	a := NewExponential(1.0, 1)
	b := NewExponential(1.0, 2)
	same := true
	for i := 0; i < 20; i++ {
		if a.Sample() != b.Sample() {
			same = false
			break
		}
	}
	assert.False(t, same)
}

func TestFixedSampler_AlwaysReturnsValue(t *testing.T) {
	s := NewFixed(3.5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 3.5, s.Sample())
	}
}
