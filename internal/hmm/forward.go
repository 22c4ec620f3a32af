package hmm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// underflowFloor replaces a probability column whose entries all
// underflowed to zero, so one impossible-looking site cannot zero out
// the rest of the recursion.
const underflowFloor = 1e-13

// Forward runs the scaled forward recursion over the shifted
// observations. It returns the total log-likelihood of the sequence,
// the scaled forward probabilities (row-per-site blocks of NumStates)
// and the per-site scaling coefficients that the backward pass must
// reuse. progress, if non-nil, is called once per site processed and
// has no effect on the result.
func Forward(tr *Transitions, b []PMF, pi []float64, obs []float64, progress func()) (logProb float64, alpha, c []float64) {
	T := len(obs)
	alpha = make([]float64, NumStates*T)
	c = make([]float64, T)
	bo := make([]float64, NumStates)

	emissionsAt(b, obs[0], bo)
	col := alpha[:NumStates]
	floats.MulTo(col, pi, bo)
	c[0] = 1.0 / flooredSum(col)
	floats.Scale(c[0], col)

	for t := 1; t < T; t++ {
		emissionsAt(b, obs[t], bo)
		prev := alpha[(t-1)*NumStates : t*NumStates]
		col := alpha[t*NumStates : (t+1)*NumStates]

		for j := 0; j < NumStates; j++ {
			var sum float64
			for i := 0; i < NumStates; i++ {
				sum += prev[i] * tr.Linear[i][j]
			}
			col[j] = sum * bo[j]
		}

		c[t] = 1.0 / flooredSum(col)
		floats.Scale(c[t], col)

		if progress != nil {
			progress()
		}
	}

	for _, ct := range c {
		logProb -= math.Log(ct)
	}
	return logProb, alpha, c
}

// flooredSum sums a state column, first substituting a small positive
// floor across the column when every entry has underflowed to zero.
func flooredSum(col []float64) float64 {
	sum := floats.Sum(col)
	if sum == 0 {
		for i := range col {
			col[i] = underflowFloor
		}
		sum = underflowFloor * NumStates
	}
	return sum
}
