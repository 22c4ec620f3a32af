package tnseq

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Gene is one row of a prot_table annotation together with the TA
// sites that fall inside its boundaries.
type Gene struct {
	// Orf is the locus identifier, e.g. "Rv0001"
	Orf string

	// Name is the display name, e.g. "dnaA", or "-" when unnamed
	Name string

	// Desc is the free-text product description
	Desc string

	Start  int
	End    int
	Strand string

	// Positions of the TA sites inside [Start, End], ascending
	Positions []int

	// Reads at those sites, parallel to Positions
	Reads []float64
}

// N is the number of TA sites associated with the gene.
func (g *Gene) N() int { return len(g.Positions) }

// Theta is the fraction of the gene's TA sites with at least one read.
func (g *Gene) Theta() float64 {
	if len(g.Reads) == 0 {
		return 0
	}
	nz := 0
	for _, c := range g.Reads {
		if c > 0 {
			nz++
		}
	}
	return float64(nz) / float64(len(g.Reads))
}

// Annotation is an ordered gene table with a TA-site lookup.
type Annotation struct {
	// Genes in the order they appear in the prot_table
	Genes []*Gene

	// siteGenes maps a TA-site index to the orfs covering it
	siteGenes map[int][]string

	byOrf map[string]*Gene
}

// GenesAt returns the orf identifiers of the genes covering the TA
// site at index t, or nil when the site is intergenic.
func (a *Annotation) GenesAt(t int) []string { return a.siteGenes[t] }

// ReadProtTable parses a 9-column tab-delimited prot_table file:
// description, start, end, strand, ..., name, orf. Lines starting with
// # are skipped.
func ReadProtTable(path string) ([]*Gene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var genes []*Gene
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 9 {
			return nil, fmt.Errorf("%s: prot_table row has %d columns, want 9: %q", path, len(cols), line)
		}

		start, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, fmt.Errorf("%s: bad start in row %q: %v", path, line, err)
		}
		end, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad end in row %q: %v", path, line, err)
		}

		genes = append(genes, &Gene{
			Orf:    cols[8],
			Name:   cols[7],
			Desc:   cols[0],
			Start:  start,
			End:    end,
			Strand: cols[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return genes, nil
}

// Annotate associates each gene with the TA sites inside its
// boundaries and builds the site-to-genes lookup. nTrim and cTrim are
// fractions of the gene span clipped from the N and C terminus before
// sites are assigned; insertions near the termini are often tolerated
// even in essential genes.
func Annotate(genes []*Gene, positions []int, reads []float64, nTrim, cTrim float64) *Annotation {
	ann := &Annotation{
		Genes:     genes,
		siteGenes: make(map[int][]string),
		byOrf:     make(map[string]*Gene),
	}

	for _, g := range genes {
		ann.byOrf[g.Orf] = g
		start, end := g.Start, g.End
		span := end - start + 1
		if nTrim > 0 || cTrim > 0 {
			if g.Strand == "-" {
				start += int(cTrim * float64(span))
				end -= int(nTrim * float64(span))
			} else {
				start += int(nTrim * float64(span))
				end -= int(cTrim * float64(span))
			}
		}

		lo := sort.SearchInts(positions, start)
		for t := lo; t < len(positions) && positions[t] <= end; t++ {
			g.Positions = append(g.Positions, positions[t])
			g.Reads = append(g.Reads, reads[t])
			ann.siteGenes[t] = append(ann.siteGenes[t], g.Orf)
		}
	}

	return ann
}

// Info returns the display name and description of an orf, or "-" for
// both when the orf is not in the table.
func (a *Annotation) Info(orf string) (name, desc string) {
	if g, ok := a.byOrf[orf]; ok {
		return g.Name, g.Desc
	}
	return "-", "-"
}
