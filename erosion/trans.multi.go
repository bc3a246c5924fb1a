package erosion

import (
	"fmt"
	"log"
	"math"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

// SedTransPwrLawMulti extends the excess-shear power law to several
// grain-size classes. Each class gets a Shields critical stress for
// its diameter, adjusted for hiding and protrusion relative to the
// layer's mean size.
type SedTransPwrLawMulti struct {
	kf, kt, mf, nf, pf float64
	diam               []float64 // class diameters [m]
	tauc               []float64 // unadjusted critical stress per class [Pa]
	hiding             float64   // hiding/protrusion exponent, 0 to 1
}

// NewSedTransPwrLawMulti reads KF, KT, MF, NF, PF, NUMGRNSIZE,
// GRAINDIAM1..9 and HIDINGEXP. More than nine classes are clamped to
// nine.
func NewSedTransPwrLawMulti(f *input.File) *SedTransPwrLawMulti {
	spy := 365.25 * 24 * 3600. // [s/yr]
	s := &SedTransPwrLawMulti{
		kf: f.Item("KF"),
		kt: f.Item("KT"),
		mf: f.Item("MF"),
		nf: f.Item("NF"),
		pf: f.Item("PF"),
	}
	numg := int(f.Item("NUMGRNSIZE"))
	if numg > 9 {
		log.Println(" warning: maximum of 9 grain size classes exceeded, resetting to 9")
		numg = 9
	}
	const thetac = 0.045
	s.diam = make([]float64, numg)
	s.tauc = make([]float64, numg)
	for i := 0; i < numg; i++ {
		s.diam[i] = f.Item(fmt.Sprintf("GRAINDIAM%d", i+1))
		s.tauc[i] = thetac * (rhosed - rho) * grav * s.diam[i]
	}
	s.kt *= math.Pow(spy, -s.mf)
	s.hiding = f.Item("HIDINGEXP")
	return s
}

// TransCapacityLay returns layer lyr's capacity scaled by weight,
// split across size classes with hiding-adjusted thresholds [m³/yr].
// Flooded nodes see a zero effective slope.
func (s *SedTransPwrLawMulti) TransCapacityLay(m *mesh.Mesh, i, lyr int, weight float64) float64 {
	n := &m.Nodes[i]
	slp := m.Slope(i)
	if slp < 0. {
		panic(fmt.Sprintf(" SedTransPwrLawMulti.TransCapacityLay: negative slope at node %d", i))
	}
	ld := n.Lays[lyr].Depth()
	frac := make([]float64, len(s.diam))
	d50 := 0.
	for j := range s.diam {
		frac[j] = n.Lays[lyr].Dgrade[j] / ld
		d50 += frac[j] * s.diam[j]
	}
	if n.Flooded {
		slp = 0.
	}
	tau := s.kt * math.Pow(n.Q/n.HydrWidth, s.mf) * math.Pow(slp, s.nf)
	n.Tau = tau
	totalcap := 0.
	for j := range s.diam {
		tauc := s.tauc[j] * math.Pow(s.diam[j]/d50, -s.hiding)
		tauex := tau - tauc
		if tauex < 0. {
			tauex = 0.
		}
		cap := frac[j] * weight * s.kf * n.HydrWidth * math.Pow(tauex, s.pf)
		totalcap += cap
		n.AddQs(j, cap)
	}
	n.Qs = totalcap
	return totalcap
}

// TransCapacity is defined only layer by layer for the multi-size law.
func (s *SedTransPwrLawMulti) TransCapacity(m *mesh.Mesh, i int) float64 {
	return 0.
}
