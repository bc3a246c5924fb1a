package erosion

import (
	"fmt"
	"math"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

// sgThresholds carries the critical shear stresses of the sand/gravel
// two-fraction laws. The sand threshold rises and the gravel threshold
// falls linearly across the mixed range of 10% to 40% sand; outside it
// both sit on constant plateaus.
type sgThresholds struct {
	grade               [2]float64 // sand, gravel diameters [m]
	taudim              float64
	lowtaucs, hightaucs float64
	lowtaucg, hightaucg float64
	sands, sandb        float64 // sand threshold line over the mixed range
	gravs, gravb        float64 // gravel threshold line
}

func newSGThresholds(f *input.File) sgThresholds {
	var t sgThresholds
	t.grade[0] = f.Item("GRAINDIAM1")
	t.grade[1] = f.Item("GRAINDIAM2")
	t.taudim = rho * grav
	refs := (rhosed - rho) * grav * t.grade[0]
	refg := (rhosed - rho) * grav * t.grade[1]
	t.lowtaucs = 0.8 * (t.grade[1] / t.grade[0]) * 0.040 * refs * 0.8531
	t.lowtaucg = 0.04 * refg * 0.8531
	t.hightaucs = 0.04 * refs * 0.8531
	t.hightaucg = 0.01 * refg * 0.8531
	t.sands = (t.lowtaucs - t.hightaucs) / (-0.3)
	t.sandb = t.lowtaucs - t.sands*0.1
	t.gravs = (t.lowtaucg - t.hightaucg) / (-0.3)
	t.gravb = t.lowtaucg - t.gravs*0.1
	return t
}

func (t *sgThresholds) sandTauc(persand float64) float64 {
	if persand < 0.10 {
		return t.lowtaucs
	} else if persand <= 0.40 {
		return t.sands*persand + t.sandb
	}
	return t.hightaucs
}

func (t *sgThresholds) gravTauc(persand float64) float64 {
	if persand < 0.10 {
		return t.lowtaucg
	} else if persand <= 0.40 {
		return t.gravs*persand + t.gravb
	}
	return t.hightaucg
}

// SedTransWilcock moves a sand and a gravel fraction separately after
// Wilcock, each with a critical stress that depends on the surface
// sand content. Class 0 must be the sand, class 1 the gravel.
type SedTransWilcock struct {
	sgThresholds
}

// NewSedTransWilcock reads GRAINDIAM1 (sand) and GRAINDIAM2 (gravel).
func NewSedTransWilcock(f *input.File) *SedTransWilcock {
	return &SedTransWilcock{newSGThresholds(f)}
}

// TransCapacity returns total sand plus gravel capacity [m³/yr],
// storing the split on the node. A surface layer thinner than the
// active depth throttles capacity in proportion to cover. Negative
// slopes carry nothing.
func (s *SedTransWilcock) TransCapacity(m *mesh.Mesh, i int) float64 {
	n := &m.Nodes[i]
	persand := n.Lays[0].Dgrade[0] / n.Lays[0].Depth()
	factor := n.Lays[0].Depth() / m.MaxRegDep
	if m.Slope(i) < 0. {
		n.SetQs(0, 0.)
		n.SetQs(1, 0.)
		n.Qs = 0.
		return 0.
	}
	slp := m.Slope(i)
	tau := s.taudim * math.Pow(n.HydrRough*n.Q*yearpersec/n.HydrWidth, 0.6) * math.Pow(slp, 0.7)

	if taucrit := s.sandTauc(persand); tau > taucrit {
		n.SetQs(0, (0.058/rhosed)*factor*n.HydrWidth*secperyear*persand*
			math.Pow(tau, 1.5)*math.Pow(1.-math.Sqrt(taucrit/tau), 4.5))
	} else {
		n.SetQs(0, 0.)
	}
	if taucrit := s.gravTauc(persand); tau > taucrit {
		n.SetQs(1, (0.058*secperyear*factor*n.HydrWidth/rhosed)*(1.-persand)*
			math.Pow(tau, 1.5)*math.Pow(1.-taucrit/tau, 4.5))
	} else {
		n.SetQs(1, 0.)
	}
	n.Qs = n.Qsm[0] + n.Qsm[1]
	return n.Qs
}

// TransCapacityLay adds layer lyr's weighted share onto the node's
// accumulating per-size capacities and returns it [m³/yr]. The totals
// must be zeroed before looping layers through here.
func (s *SedTransWilcock) TransCapacityLay(m *mesh.Mesh, i, lyr int, weight float64) float64 {
	n := &m.Nodes[i]
	ld := n.Lays[lyr].Depth()
	if ld <= 0. {
		panic(fmt.Sprintf(" SedTransWilcock.TransCapacityLay: empty layer %d at node %d", lyr, i))
	}
	persand := n.Lays[lyr].Dgrade[0] / ld
	if m.Slope(i) < 0. {
		n.SetQs(0, 0.)
		if m.Numg == 2 {
			n.SetQs(1, 0.)
		}
		n.Qs = 0.
		return 0.
	}
	slp := m.Slope(i)
	tau := s.taudim * math.Pow(0.03, 0.6) * math.Pow(n.Q/secperyear, 0.3) * math.Pow(slp, 0.7)

	qss, qsg := 0., 0.
	if taucrit := s.sandTauc(persand); tau > taucrit {
		qss = (0.058 / rhosed) * weight * n.HydrWidth * secperyear * persand *
			math.Pow(tau, 1.5) * math.Pow(1.-math.Sqrt(taucrit/tau), 4.5)
		n.AddQs(0, qss)
	}
	if m.Numg == 2 {
		if taucrit := s.gravTauc(persand); tau > taucrit {
			qsg = (0.058 * secperyear * weight * n.HydrWidth / rhosed) * (1. - persand) *
				math.Pow(tau, 1.5) * math.Pow(1.-taucrit/tau, 4.5)
			n.AddQs(1, qsg)
		}
	}
	return qss + qsg
}
