package erosion

import (
	"fmt"
	"math"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

// SedTransPwrLaw computes transport capacity from excess shear stress:
// Qs = kf W (kt (Q/W)^mf S^nf - tauc)^pf.
type SedTransPwrLaw struct {
	kf   float64 // transport efficiency
	kt   float64 // shear coefficient; read in SI, rescaled to Q in m³/yr
	mf   float64 // specific-discharge exponent
	nf   float64 // slope exponent
	pf   float64 // excess-shear exponent
	tauc float64 // critical shear stress [Pa]
}

// NewSedTransPwrLaw reads KF, KT, MF, NF, PF and TAUCD.
func NewSedTransPwrLaw(f *input.File) *SedTransPwrLaw {
	spy := 365.25 * 24 * 3600. // [s/yr]
	s := &SedTransPwrLaw{
		kf:   f.Item("KF"),
		kt:   f.Item("KT"),
		mf:   f.Item("MF"),
		nf:   f.Item("NF"),
		pf:   f.Item("PF"),
		tauc: f.Item("TAUCD"),
	}
	s.kt *= math.Pow(spy, -s.mf)
	return s
}

// TransCapacity returns the whole-node capacity [m³/yr], storing it in
// the node's scalar total. Flooded nodes carry zero capacity.
func (s *SedTransPwrLaw) TransCapacity(m *mesh.Mesh, i int) float64 {
	n := &m.Nodes[i]
	slp := m.Slope(i)
	if slp < 0. {
		panic(fmt.Sprintf(" SedTransPwrLaw.TransCapacity: negative slope at node %d", i))
	}
	cap := 0.
	if !n.Flooded {
		tau := s.kt * math.Pow(n.Q/n.HydrWidth, s.mf) * math.Pow(slp, s.nf)
		n.Tau = tau
		tauex := tau - s.tauc
		if tauex < 0. {
			tauex = 0.
		}
		cap = s.kf * n.HydrWidth * math.Pow(tauex, s.pf)
	}
	n.Qs = cap
	return cap
}

// TransCapacityLay returns layer lyr's share of capacity, scaled by
// weight, splitting it across the size classes by their proportion in
// the layer [m³/yr]. Per-size capacities accumulate; the scalar total
// is left holding this layer's capacity alone.
func (s *SedTransPwrLaw) TransCapacityLay(m *mesh.Mesh, i, lyr int, weight float64) float64 {
	n := &m.Nodes[i]
	slp := m.Slope(i)
	if slp < 0. {
		panic(fmt.Sprintf(" SedTransPwrLaw.TransCapacityLay: negative slope at node %d", i))
	}
	cap := 0.
	if !n.Flooded {
		tau := s.kt * math.Pow(n.Q/n.HydrWidth, s.mf) * math.Pow(slp, s.nf)
		n.Tau = tau
		tauex := tau - s.tauc
		if tauex < 0. {
			tauex = 0.
		}
		cap = weight * s.kf * n.HydrWidth * math.Pow(tauex, s.pf)
	}
	ld := n.Lays[lyr].Depth()
	for j := 0; j < m.Numg; j++ {
		n.AddQs(j, cap*n.Lays[lyr].Dgrade[j]/ld)
	}
	n.Qs = cap
	return cap
}
