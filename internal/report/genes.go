package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aswarren/transit/internal/hmm"
)

// WriteGenes writes the gene-level output: one row per gene with its
// site tallies, insertion density, average nonzero read count and the
// final essentiality call.
func WriteGenes(w io.Writer, calls []hmm.GeneCall) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#HMM - Genes\n")
	for _, c := range calls {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%1.4f\t%1.2f\t%s\n",
			c.Orf, c.Name, c.Desc, c.N,
			c.StateCounts[hmm.ES], c.StateCounts[hmm.GD],
			c.StateCounts[hmm.NE], c.StateCounts[hmm.GA],
			c.Theta, c.AvgNonzeroReads, c.Call)
	}

	return bw.Flush()
}
