package mesh

const (
	minlay    = 1e-9 // emptied-layer removal tolerance [m]
	rockdepth = 1e6  // seed thickness of the basal rock layer [m]
)

// Layer is one stratigraphic unit at a node. Dgrade partitions the layer
// thickness by grain-size class, so fractions Dgrade[j]/Depth() sum to one
// by construction.
type Layer struct {
	Dgrade []float64 // thickness held per grain-size class [m]
	Erody  float64   // detachment erodibility coefficient
	Ctime  float64   // creation time [yr]
	Rtime  float64   // time of most recent activity [yr]
	Etime  float64   // cumulative surface-exposure time [yr]
	Rock   bool
}

// Depth is the layer thickness [m].
func (l *Layer) Depth() float64 {
	d := 0.
	for _, v := range l.Dgrade {
		d += v
	}
	return d
}

// SeedStrat initializes every node's stratigraphy to a sediment mantle of
// thickness regdep (erodibility kr) over a deep basal rock layer
// (erodibility kb), graded by frac (uniform when nil), and sizes the
// per-grain flux accumulators. Call before simulating.
func (m *Mesh) SeedStrat(regdep, kr, kb float64, frac []float64) {
	m.Kr = kr
	if frac == nil {
		frac = make([]float64, m.Numg)
		for j := range frac {
			frac[j] = 1. / float64(m.Numg)
		}
	}
	for i := range m.Nodes {
		nd := &m.Nodes[i]
		rock := Layer{Dgrade: make([]float64, m.Numg), Erody: kb, Rock: true}
		for j := range rock.Dgrade {
			rock.Dgrade[j] = frac[j] * rockdepth
		}
		if regdep > 0. {
			sed := Layer{Dgrade: make([]float64, m.Numg), Erody: kr}
			for j := range sed.Dgrade {
				sed.Dgrade[j] = frac[j] * regdep
			}
			nd.Lays = []Layer{sed, rock}
		} else {
			nd.Lays = []Layer{rock}
		}
		nd.Qsm = make([]float64, m.Numg)
		nd.Qsinm = make([]float64, m.Numg)
	}
}

// EroDepL erodes (negative) or deposits (positive) the given depths per
// grain size [m] at layer lyr of node n, stamping activity time tm, and
// returns the change realized per size class. Scour is clamped to the
// material present; an emptied sediment layer is removed from the stack;
// the surface layer is held no thicker than MaxRegDep by pushing excess
// into the layer below.
func (m *Mesh) EroDepL(n, lyr int, dzg []float64, tm float64) []float64 {
	nd := &m.Nodes[n]
	ret := make([]float64, m.Numg)
	if lyr >= len(nd.Lays) {
		lyr = len(nd.Lays) - 1
	}
	ly := &nd.Lays[lyr]

	dep := false
	for j := 0; j < m.Numg && j < len(dzg); j++ {
		if dzg[j] < 0. {
			take := -dzg[j]
			if take > ly.Dgrade[j] {
				take = ly.Dgrade[j]
			}
			ly.Dgrade[j] -= take
			ret[j] = -take
		} else if dzg[j] > 0. {
			dep = true
		}
	}
	if dep {
		if ly.Rock { // deposits never enter rock; seed a sediment layer above
			nd.insertLay(lyr, Layer{Dgrade: make([]float64, m.Numg), Erody: m.Kr, Ctime: tm})
			ly = &nd.Lays[lyr]
		}
		for j := 0; j < m.Numg && j < len(dzg); j++ {
			if dzg[j] > 0. {
				ly.Dgrade[j] += dzg[j]
				ret[j] = dzg[j]
			}
		}
	}
	ly.Rtime = tm

	net := 0.
	for _, v := range ret {
		net += v
	}
	nd.Z += net

	if !ly.Rock && ly.Depth() < minlay && len(nd.Lays) > 1 {
		nd.removeLay(lyr)
	}
	m.spill(n, tm)
	return ret
}

// EroDep applies a bulk elevation change dz [m] at node n without per-grain
// bookkeeping: scour consumes the stack top-down pro rata by grading,
// deposits build the surface sediment layer. Serves hillslope diffusion and
// the single-size channel integrators.
func (m *Mesh) EroDep(n int, dz float64) {
	nd := &m.Nodes[n]
	if dz == 0. {
		return
	}
	if dz < 0. {
		rem := -dz
		for rem > 0. && len(nd.Lays) > 0 {
			ly := &nd.Lays[0]
			d := ly.Depth()
			if d > rem {
				for j := range ly.Dgrade {
					ly.Dgrade[j] -= rem * ly.Dgrade[j] / d
				}
				rem = 0.
			} else if len(nd.Lays) == 1 { // basal layer exhausted
				for j := range ly.Dgrade {
					ly.Dgrade[j] = 0.
				}
				break
			} else {
				rem -= d
				nd.removeLay(0)
			}
		}
	} else {
		if len(nd.Lays) == 0 || nd.Lays[0].Rock {
			gr := make([]float64, m.Numg)
			if len(nd.Lays) > 0 && nd.Lays[0].Depth() > 0. { // inherit exposed grading
				d := nd.Lays[0].Depth()
				for j := range gr {
					gr[j] = dz * nd.Lays[0].Dgrade[j] / d
				}
			} else {
				for j := range gr {
					gr[j] = dz / float64(m.Numg)
				}
			}
			nd.insertLay(0, Layer{Dgrade: gr, Erody: m.Kr})
		} else {
			ly := &nd.Lays[0]
			if d := ly.Depth(); d > 0. {
				for j := range ly.Dgrade {
					ly.Dgrade[j] += dz * ly.Dgrade[j] / d
				}
			} else {
				for j := range ly.Dgrade {
					ly.Dgrade[j] += dz / float64(m.Numg)
				}
			}
		}
		m.spill(n, nd.Lays[0].Rtime)
	}
	nd.Z += dz
}

// spill enforces the MaxRegDep cap on node n's surface sediment layer,
// moving the excess (pro rata by grading) into the layer below.
func (m *Mesh) spill(n int, tm float64) {
	nd := &m.Nodes[n]
	if len(nd.Lays) == 0 || nd.Lays[0].Rock {
		return
	}
	d := nd.Lays[0].Depth()
	if d <= m.MaxRegDep {
		return
	}
	if len(nd.Lays) < 2 || nd.Lays[1].Rock {
		nd.insertLay(1, Layer{Dgrade: make([]float64, m.Numg), Erody: nd.Lays[0].Erody, Ctime: nd.Lays[0].Ctime, Rtime: tm})
	}
	ex := d - m.MaxRegDep
	sl, bl := &nd.Lays[0], &nd.Lays[1]
	for j := range sl.Dgrade {
		mv := ex * sl.Dgrade[j] / d
		sl.Dgrade[j] -= mv
		bl.Dgrade[j] += mv
	}
}
