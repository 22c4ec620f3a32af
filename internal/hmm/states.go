// Package hmm assigns an essentiality state to every TA site in a
// TnSeq dataset with a four-state Hidden Markov Model, then rolls the
// site-level calls up to gene-level essentiality calls.
//
// Reference: DeJesus et al. (2013; BMC Bioinformatics)
package hmm

// NumStates is the number of essentiality states in the model.
const NumStates = 4

// State indexes the essentiality states. The ordering matters: the
// initial distribution is biased toward the first state and the
// transition heuristic references the middle of the range.
type State int

// The four essentiality levels.
const (
	ES State = iota // Essential
	GD              // Growth-Defect
	NE              // Non-Essential
	GA              // Growth-Advantage
)

var stateLabels = [NumStates]string{"ES", "GD", "NE", "GA"}

func (s State) String() string {
	if s < 0 || int(s) >= NumStates {
		return "Unknown State"
	}
	return stateLabels[s]
}

// InitialDistribution is the prior over states at the first TA site,
// biased toward Essential since essential regions are common at the
// start of bacterial replicons.
func InitialDistribution() []float64 {
	pi := make([]float64, NumStates)
	pi[0] = 0.7
	for i := 1; i < NumStates; i++ {
		pi[i] = 0.3 / float64(NumStates-1)
	}
	return pi
}

// argmax returns the index of the largest value in x. Ties go to the
// lowest index; decoding depends on this being deterministic.
func argmax(x []float64) int {
	best := 0
	for i := 1; i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}
