package hmm

import "gonum.org/v1/gonum/floats"

// Result bundles everything a run produces: the estimated parameters,
// the decoded path and the posterior tables needed for site output.
type Result struct {
	Params      *Parameters
	Transitions *Transitions

	// Obs is the shifted (+1) observation sequence the model saw
	Obs []float64

	// Path is the Viterbi state sequence, one state per TA site
	Path []State

	// StateCounts tallies Path over the whole genome
	StateCounts [NumStates]int

	// LogProb is the total log-likelihood of the observations
	LogProb float64

	// Alpha, Beta and Gamma are the scaled forward, backward and
	// posterior tables in row-per-site blocks of NumStates; C holds
	// the shared scaling coefficients
	Alpha, Beta, Gamma, C []float64

	// Theta is the genome-wide insertion density
	Theta float64
}

// Posterior returns the state posterior distribution at site t.
func (r *Result) Posterior(t int) []float64 {
	return r.Gamma[t*NumStates : (t+1)*NumStates]
}

// Run estimates parameters from the raw per-site read counts and runs
// the three inference passes. progress, if non-nil, is invoked once
// per recursion step across all passes; it is observational only.
func Run(reads []float64, progress func()) (*Result, error) {
	params, err := EstimateParameters(reads)
	if err != nil {
		return nil, err
	}

	// Shift by +1 so a raw zero count sits on the support of the
	// geometric emission distributions.
	obs := make([]float64, len(reads))
	nz := 0
	for t, rd := range reads {
		obs[t] = rd + 1
		if rd > 0 {
			nz++
		}
	}

	b := Emissions(params.Mu)
	tr := BuildTransitions(b[NumStates/2], params.RunLength)
	pi := InitialDistribution()

	vit := Viterbi(tr, b, pi, obs, progress)
	logProb, alpha, c := Forward(tr, b, pi, obs, progress)
	beta := Backward(tr, b, obs, c, progress)

	res := &Result{
		Params:      params,
		Transitions: tr,
		Obs:         obs,
		Path:        vit.Path,
		LogProb:     logProb,
		Alpha:       alpha,
		Beta:        beta,
		C:           c,
		Gamma:       posteriors(alpha, beta),
		Theta:       float64(nz) / float64(len(reads)),
	}
	for _, s := range vit.Path {
		res.StateCounts[s]++
	}
	return res, nil
}

// posteriors combines the forward and backward tables into per-site
// posterior state distributions, each normalized to sum to 1.
func posteriors(alpha, beta []float64) []float64 {
	gamma := make([]float64, len(alpha))
	for t := 0; t < len(alpha)/NumStates; t++ {
		col := gamma[t*NumStates : (t+1)*NumStates]
		floats.MulTo(col, alpha[t*NumStates:(t+1)*NumStates], beta[t*NumStates:(t+1)*NumStates])
		if sum := floats.Sum(col); sum > 0 {
			floats.Scale(1.0/sum, col)
		}
	}
	return gamma
}
