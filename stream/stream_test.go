package stream

import (
	"testing"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

func netParams() *input.File {
	return input.FromMap(map[string]float64{
		"RAINRATE": 1., "INFILT": 0.2, "BANKFULLEVENT": 5.,
		"HYDR_WID_COEFF_DS": 10., "HYDR_WID_EXP_DS": 0.5, "HYDR_WID_EXP_STN": 0.26,
		"HYDR_DEP_COEFF_DS": 1., "HYDR_DEP_EXP_DS": 0.4, "HYDR_DEP_EXP_STN": 0.4,
		"HYDR_ROUGH_COEFF_DS": 0.03, "HYDR_ROUGH_EXP_DS": 0., "HYDR_ROUGH_EXP_STN": 0.,
	})
}

// tiltedBlock slopes a 5x5 block down toward the y=0 boundary row.
func tiltedBlock() *mesh.Mesh {
	m := mesh.NewBlock(5, 5, 10., 1)
	for i := range m.Nodes {
		m.Nodes[i].Z = m.Nodes[i].Y * 0.02
	}
	m.SeedStrat(0.5, 2e-4, 1e-4, nil)
	return m
}

func TestRouteFlowOrdering(t *testing.T) {
	m := tiltedBlock()
	s := New(netParams(), 1)
	s.RouteFlow(m)

	pos := make(map[int]int, len(m.Ord))
	for k, i := range m.Ord {
		pos[i] = k
	}
	for _, i := range m.Ord {
		cn := &m.Nodes[i]
		if cn.Ds < 0 {
			t.Errorf("active node %d has no downstream link", i)
			continue
		}
		if dp, ok := pos[cn.Ds]; ok && dp < pos[i] {
			t.Errorf("node %d ordered after its downstream neighbour %d", i, cn.Ds)
		}
		if m.Nodes[cn.Ds].Z > cn.Z {
			t.Errorf("node %d drains uphill to %d", i, cn.Ds)
		}
	}
}

func TestRouteFlowAccumulatesDischarge(t *testing.T) {
	m := tiltedBlock()
	s := New(netParams(), 1)
	s.RouteFlow(m)

	runoff := 1. - 0.2
	for _, i := range m.Ord {
		cn := &m.Nodes[i]
		if cn.Q < runoff*cn.VArea {
			t.Errorf("node %d discharge %g below local runoff %g", i, cn.Q, runoff*cn.VArea)
		}
		if cn.Ds >= 0 && m.Nodes[cn.Ds].DrArea < cn.DrArea {
			t.Errorf("drainage area shrank downstream of node %d", i)
		}
	}
}

func TestHydraulicGeometryScales(t *testing.T) {
	m := tiltedBlock()
	s := New(netParams(), 1)
	s.RouteFlow(m)
	s.FindChanGeom(m)
	s.FindHydrGeom(m)

	for _, i := range m.Ord {
		cn := &m.Nodes[i]
		if cn.ChanWidth <= 0. || cn.ChanDepth <= 0. {
			t.Fatalf("node %d bankfull geometry not set", i)
		}
		// at-a-station flow never exceeds bankfull
		if cn.HydrWidth > cn.ChanWidth*(1.+1e-12) {
			t.Errorf("node %d hydraulic width %g exceeds bankfull %g", i, cn.HydrWidth, cn.ChanWidth)
		}
		if cn.HydrRough <= 0. {
			t.Errorf("node %d roughness not set", i)
		}
	}
}

func TestInletFeed(t *testing.T) {
	s := New(netParams(), 2)
	if s.InletNode() != -1 {
		t.Fatalf("inlet = %d, want -1 when OPTINLET is off", s.InletNode())
	}
	s.SetInlet(3, []float64{2., 5.})
	if s.InletNode() != 3 || s.InSedLoad() != 7. {
		t.Errorf("inlet = %d load = %g, want 3 and 7", s.InletNode(), s.InSedLoad())
	}
	if q := s.InSedLoads(); q[0] != 2. || q[1] != 5. {
		t.Errorf("per-size loads = %v, want [2 5]", q)
	}
}
