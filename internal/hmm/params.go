package hmm

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	// Zero-runs shorter than this preceding an insertion are treated
	// as chance gaps and pooled with the non-essential sites when
	// estimating the insertion density.
	noiseRunLength = 10

	// Upper bound on the run-length search in estimateRunLength.
	maxRunLength = 100
)

// Parameters are the empirical model parameters estimated from the
// combined read counts before inference.
type Parameters struct {
	// Mu is the mean read count attributed to each state
	Mu []float64

	// L is the per-state geometric emission rate, 1/Mu
	L []float64

	// MeanReads is the mean of the lowest 95% of nonzero reads
	MeanReads float64

	// Pins is the estimated fraction of TA sites with an insertion
	Pins float64

	// PinsObs is the raw observed fraction of sites with an insertion
	PinsObs float64

	// RunLength is the expected span of a chance zero-run under the
	// estimated insertion density; it calibrates self-transitions
	RunLength int
}

// EstimateParameters derives the emission means and the insertion
// density from the raw (unshifted) per-site read counts.
func EstimateParameters(reads []float64) (*Parameters, error) {
	var readsNZ []float64
	nIns := 0
	for _, rd := range reads {
		if rd != 0 {
			readsNZ = append(readsNZ, rd)
		}
		if rd >= 1 {
			nIns++
		}
	}
	if len(readsNZ) == 0 {
		return nil, fmt.Errorf("dataset has no insertions; cannot estimate emission parameters")
	}
	sort.Float64s(readsNZ)

	// Trim the top 5% of sites so a few hot spots do not inflate the
	// non-essential mean.
	cut := int(0.95 * float64(len(readsNZ)))
	if cut == 0 {
		cut = len(readsNZ)
	}
	meanR := stat.Mean(readsNZ[:cut], nil)

	mu := []float64{1.0 / 0.99, 0.01*meanR + 2, meanR, meanR * 5.0}
	l := make([]float64, NumStates)
	for i, m := range mu {
		l[i] = 1.0 / m
	}

	pins := CalculatePins(reads)

	return &Parameters{
		Mu:        mu,
		L:         l,
		MeanReads: meanR,
		Pins:      pins,
		PinsObs:   float64(nIns) / float64(len(reads)),
		RunLength: estimateRunLength(pins),
	}, nil
}

// CalculatePins estimates the fraction of TA sites with an insertion.
// Walking the genome in order, a run of fewer than noiseRunLength
// zero-count sites in front of an insertion is pooled with the
// non-essential sites: short gaps are expected by chance even where
// nothing is essential. Longer runs are candidate essential regions
// and are left out of the pool, as is any trailing run.
func CalculatePins(reads []float64) float64 {
	var pool []float64
	var run []float64
	for _, rd := range reads {
		if rd >= 1 {
			if len(run) < noiseRunLength {
				pool = append(pool, run...)
			}
			pool = append(pool, rd)
			run = run[:0]
		} else {
			run = append(run, rd)
		}
	}

	if len(pool) == 0 {
		return 0
	}
	nz := 0
	for _, rd := range pool {
		if rd >= 1 {
			nz++
		}
	}
	return float64(nz) / float64(len(pool))
}

// estimateRunLength returns the smallest run length r for which a
// contiguous zero-run is implausible under the null, i.e.
// (1-pins)^r < 0.01, searching r in [0, maxRunLength).
func estimateRunLength(pins float64) int {
	pnon := 1.0 - pins
	r := maxRunLength - 1
	for i := 0; i < maxRunLength; i++ {
		if math.Pow(pnon, float64(i)) < 0.01 {
			r = i
			break
		}
	}
	return r
}
