package hmm

import (
	"math"
	"testing"
)

// testModel builds a small model with fixed parameters so the
// recursion tests do not depend on estimation.
func testModel() (*Transitions, []PMF, []float64) {
	b := Emissions([]float64{1.0 / 0.99, 2.1, 10, 50})
	tr := BuildTransitions(b[NumStates/2], 4)
	return tr, b, InitialDistribution()
}

// shifted observation sequences for the recursion tests
func testObs() []float64 {
	return []float64{1, 1, 1, 25, 30, 28, 1, 1, 3, 2, 40, 1}
}

func Test_ForwardBackward_posteriors(t *testing.T) {
	tr, b, pi := testModel()
	obs := testObs()

	_, alpha, c := Forward(tr, b, pi, obs, nil)
	beta := Backward(tr, b, obs, c, nil)

	// alpha[:,t] * beta[:,t] normalized is a distribution at every site
	gamma := posteriors(alpha, beta)
	for t2 := 0; t2 < len(obs); t2++ {
		sum := 0.0
		for i := 0; i < NumStates; i++ {
			sum += gamma[t2*NumStates+i]
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("gamma[:,%d] sums to %v, want 1", t2, sum)
		}
	}

	// the scaled alpha columns themselves sum to 1
	for t2 := 0; t2 < len(obs); t2++ {
		sum := 0.0
		for i := 0; i < NumStates; i++ {
			sum += alpha[t2*NumStates+i]
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("alpha[:,%d] sums to %v, want 1", t2, sum)
		}
	}
}

func Test_Forward_logLikelihood(t *testing.T) {
	tr, b, pi := testModel()
	obs := testObs()

	logProb, _, c := Forward(tr, b, pi, obs, nil)

	want := 0.0
	for _, ct := range c {
		want -= math.Log(ct)
	}
	if logProb != want {
		t.Errorf("logProb = %v, want -sum(log C) = %v", logProb, want)
	}
	if logProb >= 0 || math.IsNaN(logProb) || math.IsInf(logProb, 0) {
		t.Errorf("logProb = %v, want a finite negative value", logProb)
	}
}

// Rerunning the passes with the same scaling coefficients must
// reproduce the arrays exactly.
func Test_ForwardBackward_idempotent(t *testing.T) {
	tr, b, pi := testModel()
	obs := testObs()

	_, alpha1, c1 := Forward(tr, b, pi, obs, nil)
	_, alpha2, c2 := Forward(tr, b, pi, obs, nil)
	beta1 := Backward(tr, b, obs, c1, nil)
	beta2 := Backward(tr, b, obs, c1, nil)

	for i := range alpha1 {
		if alpha1[i] != alpha2[i] {
			t.Fatalf("alpha differs at %d: %v vs %v", i, alpha1[i], alpha2[i])
		}
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("C differs at %d: %v vs %v", i, c1[i], c2[i])
		}
	}
	for i := range beta1 {
		if beta1[i] != beta2[i] {
			t.Fatalf("beta differs at %d: %v vs %v", i, beta1[i], beta2[i])
		}
	}
}

// A single-site sequence still yields well-formed tables.
func Test_ForwardBackward_singleSite(t *testing.T) {
	tr, b, pi := testModel()
	obs := []float64{1}

	logProb, alpha, c := Forward(tr, b, pi, obs, nil)
	beta := Backward(tr, b, obs, c, nil)

	if len(alpha) != NumStates || len(beta) != NumStates || len(c) != 1 {
		t.Fatalf("bad shapes: alpha=%d beta=%d c=%d", len(alpha), len(beta), len(c))
	}
	if math.IsNaN(logProb) {
		t.Errorf("logProb = NaN for a single site")
	}
	for i := 0; i < NumStates; i++ {
		if math.IsNaN(alpha[i]) || math.IsNaN(beta[i]) {
			t.Errorf("NaN in single-site tables: alpha=%v beta=%v", alpha[i], beta[i])
		}
	}
}

// An impossible-looking column is floored instead of zeroing out the
// rest of the recursion.
func Test_Forward_underflowFloor(t *testing.T) {
	tr, b, pi := testModel()

	// an absurd count underflows every emission PMF
	obs := []float64{1, 1e9, 1, 1}

	logProb, alpha, _ := Forward(tr, b, pi, obs, nil)
	for i := range alpha {
		if math.IsNaN(alpha[i]) {
			t.Fatalf("NaN at alpha[%d] after underflow", i)
		}
	}
	if math.IsNaN(logProb) {
		t.Errorf("logProb = NaN after underflow")
	}
}
