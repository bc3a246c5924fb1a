package erosion

import (
	"fmt"
	"math"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

// BedErodePwrLaw detaches intact bed material in proportion to excess
// shear stress: Dc = e (kt (Q/W)^mb S^nb - tauc)^pb, where e is the
// erodibility of the layer being cut and tauc the node's critical
// shear stress.
type BedErodePwrLaw struct {
	kb    float64 // erodibility used by the stable-step estimate
	kt    float64 // shear coefficient; read in SI, rescaled to Q in m³/yr
	mb    float64 // specific-discharge exponent
	nb    float64 // slope exponent
	pb    float64 // excess-shear exponent
	taucd float64 // default critical shear stress [Pa]
}

// NewBedErodePwrLaw reads KB, KT, MB, NB, PB and TAUCD. KT is given in
// SI units and rescaled here so discharge can stay in m³/yr.
func NewBedErodePwrLaw(f *input.File) *BedErodePwrLaw {
	spy := 365.25 * 24 * 3600. // [s/yr]
	b := &BedErodePwrLaw{
		kb:    f.Item("KB"),
		kt:    f.Item("KT"),
		mb:    f.Item("MB"),
		nb:    f.Item("NB"),
		pb:    f.Item("PB"),
		taucd: f.Item("TAUCD"),
	}
	b.kt *= math.Pow(spy, -b.mb)
	return b
}

// TauCrit returns the default critical shear stress, used to seed
// nodes that carry none of their own [Pa].
func (b *BedErodePwrLaw) TauCrit() float64 { return b.taucd }

// DetachCapacity returns the detachment rate at node i using the
// surface-layer erodibility [m/yr]. The shear stress and the negated
// rate are stored on the node. Flooded nodes detach nothing.
func (b *BedErodePwrLaw) DetachCapacity(m *mesh.Mesh, i int) float64 {
	n := &m.Nodes[i]
	if n.Flooded {
		return 0.
	}
	slp := m.Slope(i)
	if slp < 0. {
		panic(fmt.Sprintf(" BedErodePwrLaw.DetachCapacity: negative slope at node %d", i))
	}
	tau := b.kt * math.Pow(n.Q/n.HydrWidth, b.mb) * math.Pow(slp, b.nb)
	n.Tau = tau
	erorate := tau - n.TauC
	if erorate < 0. {
		erorate = 0.
	}
	erorate = n.Lays[0].Erody * math.Pow(erorate, b.pb)
	n.DrDt = -erorate
	return erorate
}

// DetachCapacityLay is DetachCapacity with the erodibility of layer
// lyr in place of the surface layer's [m/yr].
func (b *BedErodePwrLaw) DetachCapacityLay(m *mesh.Mesh, i, lyr int) float64 {
	n := &m.Nodes[i]
	if n.Flooded {
		return 0.
	}
	slp := m.Slope(i)
	if slp < 0. {
		panic(fmt.Sprintf(" BedErodePwrLaw.DetachCapacityLay: negative slope at node %d", i))
	}
	tau := b.kt * math.Pow(n.Q/n.HydrWidth, b.mb) * math.Pow(slp, b.nb)
	n.Tau = tau
	erorate := tau - n.TauC
	if erorate < 0. {
		erorate = 0.
	}
	erorate = n.Lays[lyr].Erody * math.Pow(erorate, b.pb)
	n.DrDt = -erorate
	return erorate
}

// DetachCapacityDt returns the depth of bed that could be cut over dt
// [m].
func (b *BedErodePwrLaw) DetachCapacityDt(m *mesh.Mesh, i int, dt float64) float64 {
	n := &m.Nodes[i]
	if n.Flooded {
		return 0.
	}
	slp := m.Slope(i)
	if slp < 0. {
		panic(fmt.Sprintf(" BedErodePwrLaw.DetachCapacityDt: negative slope at node %d", i))
	}
	tau := b.kt * math.Pow(n.Q/n.HydrWidth, b.mb) * math.Pow(slp, b.nb)
	n.Tau = tau
	tauex := tau - n.TauC
	if tauex < 0. {
		tauex = 0.
	}
	return n.Lays[0].Erody * math.Pow(tauex, b.pb) * dt
}

// SetTimeStep estimates a stable step for the detachment wave at node
// i from the Courant condition, dt = 0.2 dx / (kb Q^mb S^(nb-1)) [yr].
// A slack bed returns an arbitrarily large step.
func (b *BedErodePwrLaw) SetTimeStep(m *mesh.Mesh, i int) float64 {
	n := &m.Nodes[i]
	slp := m.Slope(i)
	if slp < 0. {
		panic(fmt.Sprintf(" BedErodePwrLaw.SetTimeStep: negative slope at node %d", i))
	}
	eroterm := b.kb * math.Pow(n.Q, b.mb) * math.Pow(slp, b.nb-1.)
	if eroterm == 0. {
		return 100000.
	}
	return 0.2 * n.FLen / eroterm
}
