package erosion

// ErodeDetachLim advances detachment-limited erosion over dtg [yr],
// assuming all detached material leaves the system. Sub-steps are
// sized so no channel segment erodes flat against its downstream
// neighbour within one step.
func (e *Erosion) ErodeDetachLim(dtg float64) {
	const frac = 0.9 // fraction of the time to zero slope
	m := e.m
	e.net.FindChanGeom(m)
	e.net.FindHydrGeom(m)
	valgrd := make([]float64, 1)
	for {
		for i := range m.Nodes {
			if m.Nodes[i].Bound {
				continue
			}
			m.Nodes[i].DzDt = -e.bedErode.DetachCapacity(m, i)
		}
		dtmax := dtg
		for i := range m.Nodes {
			cn := &m.Nodes[i]
			if cn.Bound || cn.Ds < 0 {
				continue
			}
			dn := &m.Nodes[cn.Ds]
			if ratediff := dn.DzDt - cn.DzDt; ratediff > 0. {
				dt := (cn.Z - dn.Z) / ratediff * frac
				if dt > 0.000005 && dt < dtmax {
					dtmax = dt
				}
			}
		}
		for i := range m.Nodes {
			cn := &m.Nodes[i]
			if cn.Bound {
				continue
			}
			valgrd[0] = cn.DzDt * dtmax
			m.EroDepL(i, 0, valgrd, 0.)
		}
		dtg -= dtmax
		if dtg <= 0.0000001 {
			break
		}
	}
}

// ErodeDetachLimU is ErodeDetachLim with a rock uplift source folded
// into the sub-step estimate where a node drains to the fixed
// boundary, keeping steps small against base-level drop.
func (e *Erosion) ErodeDetachLimU(dtg float64, u Uplift) {
	const frac = 0.1
	m := e.m
	dtmin := dtg * 0.0001
	e.net.FindChanGeom(m)
	e.net.FindHydrGeom(m)
	valgrd := make([]float64, 1)
	for {
		for i := range m.Nodes {
			if m.Nodes[i].Bound {
				continue
			}
			m.Nodes[i].DzDt = -e.bedErode.DetachCapacity(m, i)
		}
		dtmax := dtg
		for i := range m.Nodes {
			cn := &m.Nodes[i]
			if cn.Bound || cn.Ds < 0 {
				continue
			}
			dn := &m.Nodes[cn.Ds]
			var ratediff float64
			if !dn.Bound {
				ratediff = dn.DzDt - cn.DzDt
			} else {
				ratediff = dn.DzDt - cn.DzDt - u.Rate(cn.X, cn.Y)
			}
			if ratediff > 0. && cn.Z > dn.Z {
				dt := (cn.Z - dn.Z) / ratediff * frac
				if dt > dtmin && dt < dtmax {
					dtmax = dt
				} else {
					dtmax = dtmin
				}
			}
		}
		for i := range m.Nodes {
			cn := &m.Nodes[i]
			if cn.Bound {
				continue
			}
			valgrd[0] = cn.DzDt * dtmax
			m.EroDepL(i, 0, valgrd, 0.)
		}
		dtg -= dtmax
		if dtg <= 0. {
			break
		}
	}
}
