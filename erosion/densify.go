package erosion

import "math"

// UpdateExposureTime ages the surface layer of every active node by
// dtg [yr]. Weathering and soil production laws key off this clock.
func (e *Erosion) UpdateExposureTime(dtg float64) {
	for i := range e.m.Nodes {
		cn := &e.m.Nodes[i]
		if cn.Bound {
			continue
		}
		cn.Lays[0].Etime += dtg
	}
}

// DensifyMesh raises mesh resolution wherever the local erosion or
// deposition flux |varea*dzdt| exceeds the configured threshold,
// asking the refiner for new nodes around each such point. No-op
// unless a refiner is attached and the threshold is set.
func (e *Erosion) DensifyMesh(time float64) {
	if e.ref == nil || e.maxflux <= 0. {
		return
	}
	for i := range e.m.Nodes {
		cn := &e.m.Nodes[i]
		if cn.Bound {
			continue
		}
		if math.Abs(cn.VArea*cn.DzDt) > e.maxflux {
			e.ref.AddNodesAround(i, time)
		}
	}
}
