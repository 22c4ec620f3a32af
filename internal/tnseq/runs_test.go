package tnseq

import (
	"math"
	"testing"
)

func Test_ExpectedRuns(t *testing.T) {
	// log2(5) + gamma/ln(2) - 0.5 + corrections
	want := math.Log(5)/math.Log(2) + eulerMascheroni/math.Log(2) - 0.5 + runCorrR1 + runCorrE1
	if got := ExpectedRuns(10, 0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("ExpectedRuns(10, 0.5) = %v, want %v", got, want)
	}

	// longer genomes allow longer chance runs
	if ExpectedRuns(1000, 0.5) <= ExpectedRuns(10, 0.5) {
		t.Error("ExpectedRuns not increasing in n")
	}

	// rarer failures make long runs less likely
	if ExpectedRuns(100, 0.1) >= ExpectedRuns(100, 0.9) {
		t.Error("ExpectedRuns not increasing in pnon")
	}
}

func Test_VarR(t *testing.T) {
	want := math.Pi*math.Pi/(6*math.Log(2)*math.Log(2)) + 1.0/12 + runCorrR2 + runCorrE2
	if got := VarR(10, 0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("VarR(10, 0.5) = %v, want %v", got, want)
	}

	// the Schilling variance does not depend on n
	if VarR(10, 0.5) != VarR(10000, 0.5) {
		t.Error("VarR should not depend on n")
	}

	if VarR(100, 0.5) <= 0 {
		t.Error("VarR must be positive")
	}
}
