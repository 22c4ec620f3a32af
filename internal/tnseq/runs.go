package tnseq

import "math"

// Closed-form moments of the longest run of failures among n Bernoulli
// trials, after Schilling (1990), "The longest run of heads". pnon is
// the per-trial failure probability (here: the chance a TA site has no
// insertion). The r/E terms are small periodic corrections treated as
// constants.
const (
	eulerMascheroni = 0.5772156649015328606

	runCorrR1 = 0.000016
	runCorrR2 = 0.00006
	runCorrE1 = 0.01
	runCorrE2 = 0.01
)

// ExpectedRuns is the expected length of the longest run of
// no-insertion sites among n sites when each site is empty with
// probability pnon.
func ExpectedRuns(n int, pnon float64) float64 {
	pins := 1.0 - pnon
	logInv := math.Log(1.0 / pnon)
	return math.Log(float64(n)*pins)/logInv +
		eulerMascheroni/logInv - 0.5 + runCorrR1 + runCorrE1
}

// VarR is the variance of the longest run of no-insertion sites among
// n sites when each site is empty with probability pnon.
func VarR(n int, pnon float64) float64 {
	logInv := math.Log(1.0 / pnon)
	return math.Pi*math.Pi/(6.0*logInv*logInv) + 1.0/12.0 + runCorrR2 + runCorrE2
}
