package hmm

import "testing"

// A run of shifted-one observations (raw zero counts everywhere)
// decodes to Essential at every site.
func Test_Viterbi_allZeroCounts(t *testing.T) {
	tr, b, pi := testModel()
	obs := make([]float64, 200)
	for i := range obs {
		obs[i] = 1
	}

	res := Viterbi(tr, b, pi, obs, nil)
	if len(res.Path) != len(obs) {
		t.Fatalf("path length = %d, want %d", len(res.Path), len(obs))
	}
	for t2, s := range res.Path {
		if s != ES {
			t.Fatalf("site %d decoded as %s, want ES", t2, s)
		}
	}
}

func Test_Viterbi_deterministic(t *testing.T) {
	tr, b, pi := testModel()
	obs := testObs()

	first := Viterbi(tr, b, pi, obs, nil)
	for run := 0; run < 3; run++ {
		again := Viterbi(tr, b, pi, obs, nil)
		for i := range first.Path {
			if first.Path[i] != again.Path[i] {
				t.Fatalf("run %d differs at site %d: %s vs %s", run, i, first.Path[i], again.Path[i])
			}
		}
	}
}

// The stored path and a fresh walk of the backpointer table agree.
func Test_Viterbi_reconstructRoundTrip(t *testing.T) {
	tr, b, pi := testModel()
	obs := testObs()

	res := Viterbi(tr, b, pi, obs, nil)
	rebuilt := res.Reconstruct(nil)

	if len(rebuilt) != len(res.Path) {
		t.Fatalf("rebuilt length = %d, want %d", len(rebuilt), len(res.Path))
	}
	for i := range rebuilt {
		if rebuilt[i] != res.Path[i] {
			t.Errorf("site %d: rebuilt %s, path %s", i, rebuilt[i], res.Path[i])
		}
	}
}

func Test_Viterbi_singleSite(t *testing.T) {
	tr, b, pi := testModel()

	res := Viterbi(tr, b, pi, []float64{1}, nil)
	if len(res.Path) != 1 {
		t.Fatalf("path length = %d, want 1", len(res.Path))
	}
	if res.Path[0] != ES {
		t.Errorf("single zero-count site decoded as %s, want ES", res.Path[0])
	}
}

// High counts pull the decode away from ES and back.
func Test_Viterbi_segments(t *testing.T) {
	tr, b, pi := testModel()

	var obs []float64
	for i := 0; i < 20; i++ {
		obs = append(obs, 1)
	}
	for i := 0; i < 20; i++ {
		obs = append(obs, 11)
	}

	res := Viterbi(tr, b, pi, obs, nil)
	if res.Path[0] != ES {
		t.Errorf("zero-count segment starts in %s, want ES", res.Path[0])
	}
	if last := res.Path[len(res.Path)-1]; last != NE {
		t.Errorf("insertion-rich segment ends in %s, want NE", last)
	}
}

func Test_argmax_firstIndexWins(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want int
	}{
		{"distinct max", []float64{0.1, 0.7, 0.2, 0.4}, 1},
		{"tie breaks low", []float64{0.5, 0.5, 0.5, 0.5}, 0},
		{"later tie breaks early", []float64{0.1, 0.9, 0.9, 0.2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := argmax(tt.x); got != tt.want {
				t.Errorf("argmax(%v) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}
