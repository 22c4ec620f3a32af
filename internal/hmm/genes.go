package hmm

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/aswarren/transit/internal/tnseq"
)

// CallNA marks a gene with no TA sites; no essentiality call can be
// made for it and callers must handle the sentinel.
const CallNA = "N/A"

// GeneCall is the gene-level essentiality call derived from the
// site-level Viterbi states.
type GeneCall struct {
	Orf  string
	Name string
	Desc string

	// N is the number of TA sites in the gene
	N int

	// StateCounts tallies the Viterbi states over the gene's sites
	StateCounts [NumStates]int

	// Theta is the gene's insertion density
	Theta float64

	// AvgNonzeroReads is the mean read count over inserted sites
	AvgNonzeroReads float64

	// Call is a state label, or CallNA for a gene without sites
	Call string
}

// CallGenes maps the genome-wide Viterbi path onto gene boundaries.
// stateAt maps a genomic position to its decoded state and theta is
// the genome-wide insertion density.
//
// A gene whose sites are unanimously ES is called ES. Otherwise, if
// the number of ES sites meets E + 3*sqrt(V) — the expected longest
// chance zero-run among n sites plus three standard deviations — the
// call is overridden to ES even against the raw majority: a run that
// long is implausible under the null. Failing both, the majority
// state wins, ties going to the lower state index.
func CallGenes(genes []*tnseq.Gene, stateAt map[int]State, theta float64) []GeneCall {
	calls := make([]GeneCall, 0, len(genes))

	for _, g := range genes {
		call := GeneCall{
			Orf:  g.Orf,
			Name: g.Name,
			Desc: g.Desc,
			N:    g.N(),
		}

		var readsNZ []float64
		for _, rd := range g.Reads {
			if rd > 0 {
				readsNZ = append(readsNZ, rd)
			}
		}
		if avg, err := stats.Mean(readsNZ); err == nil {
			call.AvgNonzeroReads = avg
		}

		for _, p := range g.Positions {
			if s, ok := stateAt[p]; ok {
				call.StateCounts[s]++
			}
		}

		if call.N == 0 {
			call.Call = CallNA
			calls = append(calls, call)
			continue
		}

		call.Theta = g.Theta()
		n0 := call.StateCounts[ES]
		switch {
		case n0 == call.N:
			call.Call = ES.String()
		case runOverride(call.N, n0, theta):
			call.Call = ES.String()
		default:
			call.Call = majorityState(call.StateCounts).String()
		}

		calls = append(calls, call)
	}

	return calls
}

// runOverride reports whether n0 ES sites out of n is a longer run of
// essential-like sites than the geometric null allows. Degenerate
// densities (theta 0 or 1) have no meaningful null and never trigger
// the override.
func runOverride(n, n0 int, theta float64) bool {
	if theta <= 0 || theta >= 1 {
		return false
	}
	e := tnseq.ExpectedRuns(n, 1.0-theta)
	v := tnseq.VarR(n, 1.0-theta)
	return float64(n0) >= e+3*math.Sqrt(v)
}

// majorityState picks the most common state; the lower index wins
// ties so the ES > GD > NE > GA priority is stable.
func majorityState(counts [NumStates]int) State {
	best := State(0)
	for s := State(1); s < NumStates; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}
