package hmm

import "math"

// ViterbiResult is the output of a Viterbi decode: the optimal path,
// the best-path log probabilities and the backpointer table (both in
// row-per-site blocks of NumStates).
type ViterbiResult struct {
	Path    []State
	Delta   []float64
	Backptr []int
}

// Viterbi finds the single most probable state sequence for the
// shifted observations with a log-space dynamic program. Argmax ties
// break toward the lower state index, which makes the decode
// deterministic. progress, if non-nil, is called once per recursion
// or traceback step.
func Viterbi(tr *Transitions, b []PMF, pi []float64, obs []float64, progress func()) *ViterbiResult {
	T := len(obs)
	delta := make([]float64, NumStates*T)
	backptr := make([]int, NumStates*T)
	nus := make([]float64, NumStates)

	for i := 0; i < NumStates; i++ {
		delta[i] = math.Log(pi[i]) + math.Log(b[i](obs[0]))
	}

	for t := 1; t < T; t++ {
		prev := delta[(t-1)*NumStates : t*NumStates]
		col := delta[t*NumStates : (t+1)*NumStates]
		ptr := backptr[t*NumStates : (t+1)*NumStates]

		for i := 0; i < NumStates; i++ {
			for j := 0; j < NumStates; j++ {
				nus[j] = prev[j] + tr.Log[j][i]
			}
			best := argmax(nus)
			ptr[i] = best
			col[i] = nus[best] + math.Log(b[i](obs[t]))
		}

		if progress != nil {
			progress()
		}
	}

	res := &ViterbiResult{Delta: delta, Backptr: backptr}
	res.Path = res.Reconstruct(progress)
	return res
}

// Reconstruct walks the backpointer table from the best final state
// back to the first site. Decoding already stores the result in Path;
// rebuilding from the tables must yield the same sequence.
func (r *ViterbiResult) Reconstruct(progress func()) []State {
	T := len(r.Delta) / NumStates
	path := make([]State, T)
	path[T-1] = State(argmax(r.Delta[(T-1)*NumStates:]))

	for t := T - 2; t >= 0; t-- {
		path[t] = State(r.Backptr[(t+1)*NumStates+int(path[t+1])])
		if progress != nil {
			progress()
		}
	}
	return path
}
