// Package tnseq reads transposon-insertion sequencing datasets: wiggle
// files of per-TA-site read counts and prot_table gene annotations.
package tnseq

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// CombineMethod selects how replicate datasets are collapsed into a
// single count per TA site.
type CombineMethod string

const (
	// CombineSum adds the replicate counts at each site
	CombineSum CombineMethod = "Sum"

	// CombineMean averages the replicate counts at each site
	CombineMean CombineMethod = "Mean"
)

// Dataset is the read counts of one sequencing library, ordered by
// genomic coordinate.
type Dataset struct {
	// Path of the wiggle file this dataset was read from
	Path string

	// Positions of the TA sites, ascending
	Positions []int

	// Reads at each TA site, parallel to Positions
	Reads []float64
}

// ReadWig parses a variableStep wiggle file of TA-site read counts.
// Comment lines (#) and track/variableStep declarations are skipped.
func ReadWig(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := &Dataset{Path: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		pos, err := strconv.Atoi(fields[0])
		if err != nil {
			// track or variableStep declaration
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s: malformed wig line %q", path, line)
		}
		count, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad count in line %q: %v", path, line, err)
		}

		d.Positions = append(d.Positions, pos)
		d.Reads = append(d.Reads, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(d.Positions) == 0 {
		return nil, fmt.Errorf("%s: no TA sites found", path)
	}

	return d, nil
}

// ReadWigs reads a set of replicate wiggle files. All replicates must
// cover the same TA sites in the same order. Read failures across the
// set are aggregated into one error.
func ReadWigs(paths []string) ([]*Dataset, error) {
	var result *multierror.Error
	var datasets []*Dataset

	for _, p := range paths {
		d, err := ReadWig(p)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		datasets = append(datasets, d)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no control datasets given")
	}

	for _, d := range datasets[1:] {
		if len(d.Positions) != len(datasets[0].Positions) {
			return nil, fmt.Errorf(
				"replicate %s has %d TA sites, want %d (from %s)",
				d.Path, len(d.Positions), len(datasets[0].Positions), datasets[0].Path)
		}
		for i, p := range d.Positions {
			if p != datasets[0].Positions[i] {
				return nil, fmt.Errorf(
					"replicate %s disagrees on TA site %d: %d vs %d",
					d.Path, i, p, datasets[0].Positions[i])
			}
		}
	}

	return datasets, nil
}

// Combine collapses replicate datasets into a single per-site count
// vector using the requested method.
func Combine(datasets []*Dataset, method CombineMethod) ([]float64, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets to combine")
	}

	T := len(datasets[0].Reads)
	combined := make([]float64, T)
	for _, d := range datasets {
		for t, c := range d.Reads {
			combined[t] += c
		}
	}

	switch method {
	case CombineSum:
	case CombineMean:
		for t := range combined {
			combined[t] /= float64(len(datasets))
		}
	default:
		return nil, fmt.Errorf("unknown combine method %q", method)
	}

	return combined, nil
}

// CountDataLines returns the number of data lines in a wiggle file,
// used to size progress reporting before a run.
func CountDataLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := strconv.Atoi(strings.Fields(line)[0]); err == nil {
			n++
		}
	}
	return n, scanner.Err()
}
