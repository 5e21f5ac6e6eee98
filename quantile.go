package linesim

// quantileEstimator is the P² (Jain & Chlamtac, 1985) streaming quantile
// algorithm, ported from the teacher's psquare.go: it tracks a single
// quantile over an unbounded stream in O(1) space, without storing or
// sorting samples. Used here to track station cycle-time and end-to-end
// sojourn distributions without retaining every Job's timing (§4 Metrics).
type quantileEstimator struct {
	p float64

	// n are the marker positions, np the desired positions, dn the desired
	// position increments, q the marker heights.
	n  [5]float64
	np [5]float64
	dn [5]float64
	q  [5]float64

	count       int
	initBuffer  []float64
	initialized bool
}

// newQuantileEstimator returns an estimator for the p-quantile (0 < p < 1).
func newQuantileEstimator(p float64) *quantileEstimator {
	return &quantileEstimator{p: p, initBuffer: make([]float64, 0, 5)}
}

// Update folds one new observation into the estimator.
func (e *quantileEstimator) Update(x float64) {
	e.count++

	if !e.initialized {
		e.initBuffer = append(e.initBuffer, x)
		if len(e.initBuffer) < 5 {
			return
		}
		e.initialize()
		return
	}

	// Find the cell k such that q[k] <= x < q[k+1], clamping at the ends.
	var k int
	switch {
	case x < e.q[0]:
		e.q[0] = x
		k = 0
	case x >= e.q[4]:
		e.q[4] = x
		k = 3
	default:
		k = 0
		for i := 0; i < 4; i++ {
			if x < e.q[i+1] {
				k = i
				break
			}
		}
	}

	for i := k + 1; i < 5; i++ {
		e.n[i]++
	}
	for i := 0; i < 5; i++ {
		e.np[i] += e.dn[i]
	}

	for i := 1; i < 4; i++ {
		d := e.np[i] - e.n[i]
		if (d >= 1 && e.n[i+1]-e.n[i] > 1) || (d <= -1 && e.n[i-1]-e.n[i] < -1) {
			sign := 1.0
			if d < 0 {
				sign = -1.0
			}
			qp := e.parabolic(i, sign)
			if e.q[i-1] < qp && qp < e.q[i+1] {
				e.q[i] = qp
			} else {
				e.q[i] = e.linear(i, sign)
			}
			e.n[i] += sign
		}
	}
}

// initialize sorts the first five observations and seeds the marker state,
// positioning the desired quantile among them.
func (e *quantileEstimator) initialize() {
	buf := e.initBuffer
	for i := 1; i < len(buf); i++ {
		v := buf[i]
		j := i - 1
		for j >= 0 && buf[j] > v {
			buf[j+1] = buf[j]
			j--
		}
		buf[j+1] = v
	}
	for i := 0; i < 5; i++ {
		e.q[i] = buf[i]
		e.n[i] = float64(i + 1)
	}
	e.np[0] = 1
	e.np[1] = 1 + 2*e.p
	e.np[2] = 1 + 4*e.p
	e.np[3] = 3 + 2*e.p
	e.np[4] = 5

	e.dn[0] = 0
	e.dn[1] = e.p / 2
	e.dn[2] = e.p
	e.dn[3] = (1 + e.p) / 2
	e.dn[4] = 1

	e.initialized = true
	e.initBuffer = nil
}

func (e *quantileEstimator) parabolic(i int, d float64) float64 {
	return e.q[i] + d/(e.n[i+1]-e.n[i-1])*(
		(e.n[i]-e.n[i-1]+d)*(e.q[i+1]-e.q[i])/(e.n[i+1]-e.n[i])+
			(e.n[i+1]-e.n[i]-d)*(e.q[i]-e.q[i-1])/(e.n[i]-e.n[i-1]))
}

func (e *quantileEstimator) linear(i int, d float64) float64 {
	return e.q[i] + d*(e.q[i+int(d)]-e.q[i])/(e.n[i+int(d)]-e.n[i])
}

// Quantile returns the current estimate. Before 5 samples have been seen it
// falls back to the maximum observed value, matching the teacher's
// small-sample behaviour.
func (e *quantileEstimator) Quantile() float64 {
	if !e.initialized {
		max := 0.0
		for _, v := range e.initBuffer {
			if v > max {
				max = v
			}
		}
		return max
	}
	return e.q[2]
}

// Count reports the number of observations folded in so far.
func (e *quantileEstimator) Count() int { return e.count }

// DurationQuantiles tracks P50/P90/P95/P99 plus the running mean and max of
// a stream of non-negative durations (station cycle times, end-to-end
// sojourn) without retaining individual samples (§4 Metrics, §8).
type DurationQuantiles struct {
	p50, p90, p95, p99 *quantileEstimator
	count              uint64
	sum                float64
	max                float64
}

// NewDurationQuantiles returns an empty tracker.
func NewDurationQuantiles() *DurationQuantiles {
	return &DurationQuantiles{
		p50: newQuantileEstimator(0.50),
		p90: newQuantileEstimator(0.90),
		p95: newQuantileEstimator(0.95),
		p99: newQuantileEstimator(0.99),
	}
}

// Observe folds one duration into every tracked quantile plus the running
// mean and max.
func (d *DurationQuantiles) Observe(x float64) {
	d.p50.Update(x)
	d.p90.Update(x)
	d.p95.Update(x)
	d.p99.Update(x)
	d.count++
	d.sum += x
	if x > d.max {
		d.max = x
	}
}

// Count returns the number of observations folded in.
func (d *DurationQuantiles) Count() uint64 { return d.count }

// Mean returns the running arithmetic mean, or 0 if no observations have
// been folded in.
func (d *DurationQuantiles) Mean() float64 {
	if d.count == 0 {
		return 0
	}
	return d.sum / float64(d.count)
}

// Sum returns the running total.
func (d *DurationQuantiles) Sum() float64 { return d.sum }

// Max returns the largest observation seen, or 0 if none.
func (d *DurationQuantiles) Max() float64 { return d.max }

// P50, P90, P95, P99 return the current quantile estimates. Each is 0 until
// at least one observation has been folded in.
func (d *DurationQuantiles) P50() float64 { return d.p50.Quantile() }
func (d *DurationQuantiles) P90() float64 { return d.p90.Quantile() }
func (d *DurationQuantiles) P95() float64 { return d.p95.Quantile() }
func (d *DurationQuantiles) P99() float64 { return d.p99.Quantile() }

// QueueLengthHistogram is an exact count of queue lengths observed at
// arrival instants. Unlike DurationQuantiles it is not an approximation:
// scenario 1's testable property (§8) requires exact counts over a small
// integer domain, which P² cannot provide since it estimates a continuous
// quantile rather than a discrete distribution (see DESIGN.md).
type QueueLengthHistogram struct {
	counts map[int]uint64
	total  uint64
}

// NewQueueLengthHistogram returns an empty histogram.
func NewQueueLengthHistogram() *QueueLengthHistogram {
	return &QueueLengthHistogram{counts: make(map[int]uint64)}
}

// Observe records one occurrence of queue length n.
func (h *QueueLengthHistogram) Observe(n int) {
	h.counts[n]++
	h.total++
}

// Count returns how many times n has been observed.
func (h *QueueLengthHistogram) Count(n int) uint64 { return h.counts[n] }

// Total returns the number of observations folded in.
func (h *QueueLengthHistogram) Total() uint64 { return h.total }

// Fraction returns Count(n)/Total, or 0 if no observations have been made.
func (h *QueueLengthHistogram) Fraction(n int) float64 {
	if h.total == 0 {
		return 0
	}
	return float64(h.counts[n]) / float64(h.total)
}

// Mean returns the exact mean queue length across all observations.
func (h *QueueLengthHistogram) Mean() float64 {
	if h.total == 0 {
		return 0
	}
	var sum float64
	for n, c := range h.counts {
		sum += float64(n) * float64(c)
	}
	return sum / float64(h.total)
}
