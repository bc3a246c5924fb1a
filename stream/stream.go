// Package stream builds the drainage structure the erosion laws
// consume: downstream links and network ordering, steady-runoff
// discharge, and regime channel geometry.
package stream

import (
	"fmt"
	"math"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
	"github.com/maseology/mmaths/topology"
)

// Net routes flow over a mesh and maintains per-node channel geometry.
type Net struct {
	rainrate float64 // storm rainfall rate [m/yr]
	infilt   float64 // infiltration capacity [m/yr]
	bankfull float64 // bankfull event rainfall rate [m/yr]

	kwds, ewds float64 // downstream width coefficient and exponent
	kdds, edds float64 // downstream depth
	knds, ends float64 // downstream roughness

	ewstn, edstn, enstn float64 // at-a-station exponents

	inlet  int // node fed by an external sediment supply; -1 none
	insed  float64
	insedm []float64
}

// New reads the rainfall, infiltration and hydraulic-geometry keywords
// for a numg-size run. An inlet is wired when OPTINLET is set.
func New(f *input.File, numg int) *Net {
	s := &Net{
		rainrate: f.Item("RAINRATE"),
		infilt:   f.ItemDefault("INFILT", 0.),
		bankfull: f.Item("BANKFULLEVENT"),
		kwds:     f.Item("HYDR_WID_COEFF_DS"),
		ewds:     f.Item("HYDR_WID_EXP_DS"),
		ewstn:    f.Item("HYDR_WID_EXP_STN"),
		kdds:     f.Item("HYDR_DEP_COEFF_DS"),
		edds:     f.Item("HYDR_DEP_EXP_DS"),
		edstn:    f.Item("HYDR_DEP_EXP_STN"),
		knds:     f.Item("HYDR_ROUGH_COEFF_DS"),
		ends:     f.Item("HYDR_ROUGH_EXP_DS"),
		enstn:    f.Item("HYDR_ROUGH_EXP_STN"),
		inlet:    -1,
		insedm:   make([]float64, numg),
	}
	if f.ItemDefault("OPTINLET", 0.) > 0. {
		s.inlet = int(f.Item("INLETNODE"))
		for j := 0; j < numg; j++ {
			s.insedm[j] = f.ItemDefault(fmt.Sprintf("INSEDLOAD%d", j+1), 0.)
			s.insed += s.insedm[j]
		}
	}
	return s
}

func (s *Net) RainRate() float64     { return s.rainrate }
func (s *Net) Infilt() float64       { return s.infilt }
func (s *Net) InletNode() int        { return s.inlet }
func (s *Net) InSedLoad() float64    { return s.insed }
func (s *Net) InSedLoads() []float64 { return s.insedm }

// SetRainRate swaps the driving rainfall rate [m/yr], as when cycling
// storm and inter-storm periods.
func (s *Net) SetRainRate(v float64) { s.rainrate = v }

// SetInlet points the external sediment feed at node i with per-size
// loads q [m³/yr].
func (s *Net) SetInlet(i int, q []float64) {
	s.inlet = i
	s.insed = 0.
	for j := range s.insedm {
		s.insedm[j] = 0.
		if j < len(q) {
			s.insedm[j] = q[j]
		}
		s.insed += s.insedm[j]
	}
}

// SortNodesByNetOrder rebuilds the mesh's active-node ordering so that
// every node comes after all of its upstream contributors.
func (s *Net) SortNodesByNetOrder(m *mesh.Mesh) {
	ds := make(map[int]int, len(m.Nodes))
	for i := range m.Nodes {
		cn := &m.Nodes[i]
		if cn.Bound {
			continue
		}
		if cn.Ds < 0 || m.Nodes[cn.Ds].Bound {
			ds[i] = -1
		} else {
			ds[i] = cn.Ds
		}
	}
	m.Ord = topology.OrderFromToTree(ds, -1)
}

// RouteFlow points every active node at its steepest downhill
// neighbour, re-orders the network, and accumulates drainage area and
// steady runoff discharge downstream. A node with no downhill
// neighbour keeps its link and is flagged flooded, which zeroes its
// stream capacity until the pond fills or drains.
func (s *Net) RouteFlow(m *mesh.Mesh) {
	for i := range m.Nodes {
		cn := &m.Nodes[i]
		if cn.Bound || len(m.Nbr) <= i || len(m.Nbr[i]) == 0 {
			continue
		}
		best, bestslp := -1, 0.
		for _, k := range m.Nbr[i] {
			d := math.Hypot(m.Nodes[k].X-cn.X, m.Nodes[k].Y-cn.Y)
			if d <= 0. {
				continue
			}
			if slp := (cn.Z - m.Nodes[k].Z) / d; slp > bestslp {
				bestslp, best = slp, k
			}
		}
		if best >= 0 {
			cn.Ds = best
			cn.FLen = math.Hypot(m.Nodes[best].X-cn.X, m.Nodes[best].Y-cn.Y)
			cn.Flooded = false
		} else {
			cn.Flooded = true
		}
	}
	s.SortNodesByNetOrder(m)

	runoff := s.rainrate - s.infilt
	if runoff < 0. {
		runoff = 0.
	}
	for i := range m.Nodes {
		m.Nodes[i].DrArea = m.Nodes[i].VArea
	}
	for _, i := range m.Ord {
		cn := &m.Nodes[i]
		if cn.Ds >= 0 {
			m.Nodes[cn.Ds].DrArea += cn.DrArea
		}
		cn.Q = runoff * cn.DrArea
	}
	for i := range m.Nodes {
		if m.Nodes[i].Bound {
			m.Nodes[i].Q = runoff * m.Nodes[i].DrArea
		}
	}
}

// FindChanGeom sets bankfull channel width and depth from the regime
// power laws of bankfull discharge.
func (s *Net) FindChanGeom(m *mesh.Mesh) {
	for i := range m.Nodes {
		cn := &m.Nodes[i]
		if cn.Bound {
			continue
		}
		qbf := s.bankfull * cn.DrArea
		cn.ChanWidth = s.kwds * math.Pow(qbf, s.ewds)
		cn.ChanDepth = s.kdds * math.Pow(qbf, s.edds)
	}
}

// FindHydrGeom sets the at-a-station hydraulic geometry by scaling the
// bankfull values with the discharge ratio.
func (s *Net) FindHydrGeom(m *mesh.Mesh) {
	for i := range m.Nodes {
		cn := &m.Nodes[i]
		if cn.Bound {
			continue
		}
		qbf := s.bankfull * cn.DrArea
		ratio := cn.Q / qbf
		cn.HydrWidth = cn.ChanWidth * math.Pow(ratio, s.ewstn)
		cn.HydrDepth = cn.ChanDepth * math.Pow(ratio, s.edstn)
		cn.HydrRough = s.knds * math.Pow(qbf, s.ends) * math.Pow(ratio, s.enstn)
	}
}
