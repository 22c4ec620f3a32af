package hmm

import (
	"math"
	"testing"
)

// zeros returns n zero-count sites
func zeros(n int) []float64 {
	return make([]float64, n)
}

// The pooling boundary: a zero-run of 9 in front of an insertion is
// chance noise and joins the pool, a run of 10 is a candidate
// essential region and stays out.
func Test_CalculatePins(t *testing.T) {
	tests := []struct {
		name  string
		reads []float64
		want  float64
	}{
		{
			"run of 9 pooled",
			append(append([]float64{0, 0, 1}, zeros(9)...), 1),
			2.0 / 13.0,
		},
		{
			"run of 10 excluded",
			append(append([]float64{0, 0, 1}, zeros(10)...), 1),
			2.0 / 4.0,
		},
		{
			"trailing zeros never pooled",
			[]float64{1, 0, 0, 0},
			1.0,
		},
		{
			"all inserted",
			[]float64{5, 3, 1, 8},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePins(tt.reads); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CalculatePins() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_estimateRunLength(t *testing.T) {
	tests := []struct {
		name string
		pins float64
		want int
	}{
		// 0.5^7 = 0.0078 is the first power below 0.01
		{"half density", 0.5, 7},
		// 0.1^2 = 0.01 is not < 0.01; 0.1^3 is
		{"dense library", 0.9, 3},
		// never drops below 0.01 within the search bound
		{"no insertions", 0.0, maxRunLength - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateRunLength(tt.pins); got != tt.want {
				t.Errorf("estimateRunLength(%v) = %d, want %d", tt.pins, got, tt.want)
			}
		})
	}
}

func Test_EstimateParameters(t *testing.T) {
	// 20 inserted sites at 10 reads each; the 95% trim drops one
	reads := zeros(20)
	for i := 0; i < 20; i++ {
		reads = append(reads, 10)
	}

	p, err := EstimateParameters(reads)
	if err != nil {
		t.Fatalf("EstimateParameters() error = %v", err)
	}

	if math.Abs(p.MeanReads-10) > 1e-9 {
		t.Errorf("MeanReads = %v, want 10", p.MeanReads)
	}

	wantMu := []float64{1.0 / 0.99, 0.01*10 + 2, 10, 50}
	for i, m := range wantMu {
		if math.Abs(p.Mu[i]-m) > 1e-9 {
			t.Errorf("Mu[%d] = %v, want %v", i, p.Mu[i], m)
		}
		if math.Abs(p.L[i]-1.0/m) > 1e-9 {
			t.Errorf("L[%d] = %v, want %v", i, p.L[i], 1.0/m)
		}
	}

	if p.PinsObs != 0.5 {
		t.Errorf("PinsObs = %v, want 0.5", p.PinsObs)
	}
	if p.RunLength < 1 || p.RunLength >= maxRunLength {
		t.Errorf("RunLength = %d outside (0, %d)", p.RunLength, maxRunLength)
	}
}

func Test_EstimateParameters_noInsertions(t *testing.T) {
	if _, err := EstimateParameters(zeros(50)); err == nil {
		t.Error("expected an error for a dataset without insertions")
	}
}
