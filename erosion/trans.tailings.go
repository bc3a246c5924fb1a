package erosion

import (
	"fmt"
	"math"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

// SedTransMineTailings applies the Willgoose and Riley (1998) transport
// relation fitted on mine-tailings slopes, split into a sand and a
// gravel fraction with the same critical stresses as the Wilcock law.
type SedTransMineTailings struct {
	sgThresholds
}

// NewSedTransMineTailings reads GRAINDIAM1 (sand) and GRAINDIAM2
// (gravel).
func NewSedTransMineTailings(f *input.File) *SedTransMineTailings {
	return &SedTransMineTailings{newSGThresholds(f)}
}

// TransCapacity returns total sand plus gravel capacity [m³/yr],
// storing the split on the node. Negative slopes carry nothing.
func (s *SedTransMineTailings) TransCapacity(m *mesh.Mesh, i int) float64 {
	n := &m.Nodes[i]
	persand := n.Lays[0].Dgrade[0] / n.Lays[0].Depth()
	if m.Slope(i) < 0. {
		n.SetQs(0, 0.)
		n.SetQs(1, 0.)
		n.Qs = 0.
		return 0.
	}
	slp := m.Slope(i)
	tau := s.taudim * math.Pow(0.03, 0.6) * math.Pow(n.Q/secperyear, 0.3) * math.Pow(slp, 0.7)

	if taucrit := s.sandTauc(persand); tau > taucrit {
		n.SetQs(0, (0.0541/rhosed)*secperyear*persand*
			math.Pow(n.Q/secperyear, 1.12)*math.Pow(slp, -0.24)*(tau-taucrit))
	} else {
		n.SetQs(0, 0.)
	}
	if taucrit := s.gravTauc(persand); tau > taucrit {
		n.SetQs(1, (0.0541/rhosed)*secperyear*(1.-persand)*
			math.Pow(n.Q/secperyear, 1.12)*math.Pow(slp, -0.24)*(tau-taucrit))
	} else {
		n.SetQs(1, 0.)
	}
	n.Qs = n.Qsm[0] + n.Qsm[1]
	return n.Qs
}

// TransCapacityLay adds layer lyr's weighted share onto the node's
// accumulating per-size capacities and returns it [m³/yr]. The totals
// must be zeroed before looping layers through here.
func (s *SedTransMineTailings) TransCapacityLay(m *mesh.Mesh, i, lyr int, weight float64) float64 {
	n := &m.Nodes[i]
	ld := n.Lays[lyr].Depth()
	if ld <= 0. {
		panic(fmt.Sprintf(" SedTransMineTailings.TransCapacityLay: empty layer %d at node %d", lyr, i))
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
		qss = (0.0541 / rhosed) * weight * secperyear * persand *
			math.Pow(n.Q/secperyear, 1.12) * math.Pow(slp, -0.24) * (tau - taucrit)
		n.AddQs(0, qss)
	}
	if m.Numg == 2 {
		if taucrit := s.gravTauc(persand); tau > taucrit {
			qsg = (0.0541 / rhosed) * weight * secperyear * (1. - persand) *
				math.Pow(n.Q/secperyear, 1.12) * math.Pow(slp, -0.24) * (tau - taucrit)
			n.AddQs(1, qsg)
		}
	}
	return qss + qsg
}
