package child

import (
	"testing"

	"github.com/SiccarPoint/child/input"
)

func runParams() *input.File {
	return input.FromMap(map[string]float64{
		"XNODES": 6., "YNODES": 6., "GRID_SPACING": 100., "INITELEV": 10., "SEED": 1.,
		"NUMGRNSIZE": 1., "REGINIT": 0.5, "MAXREGDEPTH": 1.,
		"KB": 1e-4, "KR": 2e-4, "KT": 1200., "MB": 0.6, "NB": 0.7, "PB": 1.5, "TAUCD": 0.,
		"KF": 0.1, "MF": 0.6, "NF": 0.7, "PF": 1.5,
		"KD": 0.01,
		"RAINRATE": 1., "INFILT": 0.2, "BANKFULLEVENT": 5.,
		"HYDR_WID_COEFF_DS": 10., "HYDR_WID_EXP_DS": 0.5, "HYDR_WID_EXP_STN": 0.26,
		"HYDR_DEP_COEFF_DS": 1., "HYDR_DEP_EXP_DS": 0.4, "HYDR_DEP_EXP_STN": 0.4,
		"HYDR_ROUGH_COEFF_DS": 0.03, "HYDR_ROUGH_EXP_DS": 0., "HYDR_ROUGH_EXP_STN": 0.,
		"OPTDETACHLIM": 1.,
		"RUNTIME":      50., "OPINTRVL": 10.,
	})
}

func TestDomainDetachLimRun(t *testing.T) {
	dom, err := NewDomain(runParams())
	if err != nil {
		t.Fatal(err)
	}
	z0 := dom.MeanElev()
	means := dom.RunQuiet()
	if len(means) != dom.NSteps() {
		t.Fatalf("sampled %d means, want %d", len(means), dom.NSteps())
	}
	prev := z0
	for s, mz := range means {
		if mz > prev+1e-12 {
			t.Errorf("mean elevation rose at step %d: %g -> %g", s, prev, mz)
		}
		prev = mz
	}
	if dom.Eq == nil || dom.Eq.LongRate() > 0. {
		t.Errorf("equilibrium tracker reports uplift-free rate %v, want <= 0", dom.Eq.LongRate())
	}
}

func TestDomainUpliftRaisesInterior(t *testing.T) {
	f := runParams()
	f.Set("UPTYPE", 1.)
	f.Set("UPRATE", 1e-3)
	f.Set("KB", 1e-12) // negligible erosion against the uplift
	f.Set("KR", 1e-12)
	f.Set("KD", 0.)
	dom, err := NewDomain(f)
	if err != nil {
		t.Fatal(err)
	}
	z0 := dom.MeanElev()
	dom.RunQuiet()
	if dom.MeanElev() <= z0 {
		t.Errorf("mean elevation %g did not rise above %g under uplift", dom.MeanElev(), z0)
	}
}

func TestUpliftProviders(t *testing.T) {
	c := ConstantUplift{U: 2e-3}
	if c.Rate(5., -10.) != 2e-3 {
		t.Errorf("constant uplift = %g, want 2e-3", c.Rate(5., -10.))
	}
	fb := FaultBlockUplift{U: 1e-3, FaultY: 100.}
	if fb.Rate(0., 150.) != 1e-3 {
		t.Errorf("footwall rate = %g, want 1e-3", fb.Rate(0., 150.))
	}
	if fb.Rate(0., 50.) != 0. {
		t.Errorf("hanging-wall rate = %g, want 0", fb.Rate(0., 50.))
	}
}
