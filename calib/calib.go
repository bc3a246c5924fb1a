// Package calib fits erosion-law coefficients to an observed record of
// domain-mean elevation through time, one observation per output
// interval.
package calib

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/SiccarPoint/child"
	"github.com/SiccarPoint/child/input"
	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/montecarlo/smpln"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

const nDim = 3 // KB, KF, KD

// par3 maps unit-interval samples onto the searched coefficients.
func par3(u []float64) (kb, kf, kd float64) {
	kb = mmaths.LogLinearTransform(1e-8, 1e-3, u[0]) // bedrock erodibility
	kf = mmaths.LogLinearTransform(1e-4, 1e3, u[1])  // transport efficiency
	kd = mmaths.LogLinearTransform(1e-4, 1., u[2])   // hillslope diffusivity
	return
}

// gen builds the objective: rebuild the domain under the sampled
// coefficients, run it quietly and score the simulated mean-elevation
// series against the observations. Returns 1-NSE, to be minimized.
func gen(f *input.File, obs []float64) func(u []float64) float64 {
	return func(u []float64) float64 {
		kb, kf, kd := par3(u)
		fc := f.Clone()
		fc.Set("KB", kb)
		fc.Set("KF", kf)
		fc.Set("KD", kd)
		dom, err := child.NewDomain(fc)
		if err != nil {
			log.Fatalf(" calib: %v", err)
		}
		sim := dom.RunQuiet()
		n := len(obs)
		if len(sim) < n {
			n = len(sim)
		}
		return 1. - objfunc.NSE(obs[:n], sim[:n])
	}
}

// Optimize searches the coefficient space with the shuffled complex
// evolution scheme, returning the best objective value and the fitted
// (KB, KF, KD).
func Optimize(f *input.File, obs []float64) (float64, []float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	g := gen(f, obs)

	fmt.Println(" optimizing..")
	uFinal, _ := glbopt.SCE(runtime.GOMAXPROCS(0), nDim, rng, g, true)

	kb, kf, kd := par3(uFinal)
	fmt.Printf("\nfinal parameters:\n\tKB:\t%v\n\tKF:\t%v\n\tKD:\t%v\n\n", kb, kf, kd)
	return g(uFinal), []float64{kb, kf, kd}
}

// Sample evaluates nsmpl Latin-hypercube draws of the coefficient
// space, returning each draw's objective value and parameters.
func Sample(f *input.File, obs []float64, nsmpl int) ([]float64, [][]float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	g := gen(f, obs)

	ofs := make([]float64, nsmpl)
	prs := make([][]float64, nsmpl)
	sp := smpln.NewLHC(rng, nsmpl, nDim, false)
	for k := 0; k < nsmpl; k++ {
		ut := make([]float64, nDim)
		for j := 0; j < nDim; j++ {
			ut[j] = sp.U[j][k]
		}
		ofs[k] = g(ut)
		kb, kf, kd := par3(ut)
		prs[k] = []float64{kb, kf, kd}
		fmt.Print(".")
	}
	fmt.Println()
	return ofs, prs
}
