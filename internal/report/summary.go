package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/aswarren/transit/internal/hmm"
)

// writeSummary writes the run statistics block that heads the sites
// file: read-count statistics, observed and estimated insertion
// densities, the estimated run length and the per-state parameters.
func writeSummary(w io.Writer, res *hmm.Result) {
	var readsNZ []float64
	for _, o := range res.Obs {
		if rd := o - 1; rd != 0 {
			readsNZ = append(readsNZ, rd)
		}
	}
	mean, _ := stats.Mean(readsNZ)
	median, _ := stats.Median(readsNZ)

	fmt.Fprintf(w, "# \n")
	fmt.Fprintf(w, "# Mean:\t%2.2f\n", mean)
	fmt.Fprintf(w, "# Median:\t%2.2f\n", median)
	fmt.Fprintf(w, "# pins (obs):\t%f\n", res.Params.PinsObs)
	fmt.Fprintf(w, "# pins (est):\t%f\n", res.Params.Pins)
	fmt.Fprintf(w, "# Run length (r):\t%d\n", res.Params.RunLength)

	fmt.Fprintf(w, "# State means:\n")
	fmt.Fprintf(w, "#    %s\n", perState(func(s hmm.State) string {
		return fmt.Sprintf("%s: %8.4f", s, res.Params.Mu[s])
	}))
	fmt.Fprintf(w, "# Self-Transition Prob:\n")
	fmt.Fprintf(w, "#    %s\n", perState(func(s hmm.State) string {
		return fmt.Sprintf("%s: %2.4e", s, res.Transitions.SelfTransition(s))
	}))
	fmt.Fprintf(w, "# State Emission Parameters (theta):\n")
	fmt.Fprintf(w, "#    %s\n", perState(func(s hmm.State) string {
		return fmt.Sprintf("%s: %1.4f", s, res.Params.L[s])
	}))
	fmt.Fprintf(w, "# State Distributions:\n")
	fmt.Fprintf(w, "#    %s\n", perState(func(s hmm.State) string {
		pct := 100.0 * float64(res.StateCounts[s]) / float64(len(res.Path))
		return fmt.Sprintf("%s: %2.2f%%", s, pct)
	}))
}

func perState(f func(hmm.State) string) string {
	parts := make([]string, hmm.NumStates)
	for s := hmm.State(0); s < hmm.NumStates; s++ {
		parts[s] = f(s)
	}
	return strings.Join(parts, "   ")
}
