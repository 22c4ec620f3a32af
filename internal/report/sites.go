// Package report formats HMM results into the tab-delimited sites and
// genes files. All float formatting lives here; the core returns
// plain numeric records.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aswarren/transit/internal/hmm"
	"github.com/aswarren/transit/internal/tnseq"
)

// WriteSites writes the per-site output: one row per TA site with its
// position, raw read count, posterior probability of each state, the
// decoded state and the genes covering the site. cmdline is echoed
// into the header so a result file records how it was produced.
func WriteSites(w io.Writer, res *hmm.Result, positions []int, ann *tnseq.Annotation, cmdline string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#HMM - Sites\n")
	fmt.Fprintf(bw, "# Tn-HMM\n")
	fmt.Fprintf(bw, "#Console: %s\n", cmdline)
	writeSummary(bw, res)

	for t := range positions {
		gammas := make([]string, hmm.NumStates)
		for i, g := range res.Posterior(t) {
			gammas[i] = fmt.Sprintf("%-9.2e", g)
		}

		var genestr string
		if orfs := ann.GenesAt(t); len(orfs) > 0 {
			parts := make([]string, len(orfs))
			for i, orf := range orfs {
				name, _ := ann.Info(orf)
				parts[i] = fmt.Sprintf("%s_(%s)", orf, name)
			}
			genestr = strings.Join(parts, ",")
		}

		fmt.Fprintf(bw, "%d\t%d\t%s\t%s\t%s\n",
			positions[t], int(res.Obs[t])-1, strings.Join(gammas, "\t"),
			res.Path[t], genestr)
	}

	return bw.Flush()
}
