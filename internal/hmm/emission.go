package hmm

import "math"

// PMF is a discrete probability mass function, evaluated at the
// (shifted) read count of a TA site. Implementations are total: any
// argument yields a probability in [0, 1].
type PMF func(k float64) float64

// Geometric returns the PMF of a geometric distribution with success
// probability p, supported on k = 1, 2, ... — the count of trials up
// to and including the first success. Arguments below the support
// return 0; large arguments underflow to 0 rather than erroring.
func Geometric(p float64) PMF {
	return func(k float64) float64 {
		if k < 1 {
			return 0
		}
		return p * math.Pow(1-p, k-1)
	}
}

// Emissions builds the per-state read-count distributions from the
// per-state mean reads. Each state emits geometrically with rate
// 1/mu: near-certain single (shifted zero) counts for ES, and heavier
// tails as the means grow toward GA.
func Emissions(mu []float64) []PMF {
	b := make([]PMF, NumStates)
	for i := 0; i < NumStates; i++ {
		b[i] = Geometric(1.0 / mu[i])
	}
	return b
}

// emissionsAt evaluates every state's PMF at one observation,
// writing into out to avoid per-site allocation.
func emissionsAt(b []PMF, obs float64, out []float64) {
	for i := range b {
		out[i] = b[i](obs)
	}
}
