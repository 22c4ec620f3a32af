package hmm

import "gonum.org/v1/gonum/floats"

// Backward runs the scaled backward recursion. c must be the scaling
// coefficients produced by Forward on the same observations so that
// alpha and beta stay on the same scale; pass nil to leave beta
// unscaled. progress, if non-nil, is called once per site processed.
func Backward(tr *Transitions, b []PMF, obs []float64, c []float64, progress func()) (beta []float64) {
	T := len(obs)
	beta = make([]float64, NumStates*T)
	bo := make([]float64, NumStates)

	last := beta[(T-1)*NumStates:]
	for i := range last {
		last[i] = 1.0
	}
	if c != nil {
		floats.Scale(c[T-1], last)
	}

	for t := T - 2; t >= 0; t-- {
		emissionsAt(b, obs[t+1], bo)
		next := beta[(t+1)*NumStates : (t+2)*NumStates]
		col := beta[t*NumStates : (t+1)*NumStates]

		for i := 0; i < NumStates; i++ {
			var sum float64
			for j := 0; j < NumStates; j++ {
				sum += tr.Linear[i][j] * bo[j] * next[j]
			}
			col[i] = sum
		}

		flooredSum(col)
		if c != nil {
			floats.Scale(c[t], col)
		}

		if progress != nil {
			progress()
		}
	}

	return beta
}
