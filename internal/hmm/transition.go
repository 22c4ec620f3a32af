package hmm

import "math"

// Transitions is the state transition matrix, kept in both log space
// (for Viterbi) and linear space (for the scaled forward/backward
// recursions).
type Transitions struct {
	Log    [][]float64
	Linear [][]float64
}

// BuildTransitions derives a self-transition-biased matrix from the
// run-length heuristic: staying in a state should survive as many
// consecutive one-count ("surprising") observations as a chance
// zero-run is expected to span. mid is the emission PMF of the middle
// state (NE for four states) and r the estimated run length.
//
// Each row puts log(1 - mid(1)^r) on the diagonal and spreads the
// remaining mass uniformly over the other states, so every row of the
// linear matrix sums to exactly 1.
func BuildTransitions(mid PMF, r int) *Transitions {
	a := math.Log1p(-math.Pow(mid(1), float64(r)))
	b := float64(r)*math.Log(mid(1)) + math.Log(1.0/float64(NumStates-1))

	tr := &Transitions{
		Log:    make([][]float64, NumStates),
		Linear: make([][]float64, NumStates),
	}
	for i := 0; i < NumStates; i++ {
		tr.Log[i] = make([]float64, NumStates)
		tr.Linear[i] = make([]float64, NumStates)
		for j := 0; j < NumStates; j++ {
			if i == j {
				tr.Log[i][j] = a
			} else {
				tr.Log[i][j] = b
			}
			tr.Linear[i][j] = math.Exp(tr.Log[i][j])
		}
	}
	return tr
}

// SelfTransition is the linear-space probability of remaining in
// state i from one TA site to the next.
func (tr *Transitions) SelfTransition(i State) float64 {
	return tr.Linear[i][i]
}
