package erosion

// StreamErode advances coupled transport and bedrock detachment over
// dtg [yr] for a single sediment size. Nodes are walked upstream to
// downstream so each balance sees its full influx; bedrock scour is
// held to what excess capacity can carry away. Superseded by
// DetachErode for multi-size runs but kept for the simpler accounting.
func (e *Erosion) StreamErode(dtg float64) {
	const frac = 0.3 // fraction of time to zero slope
	m := e.m
	e.net.SortNodesByNetOrder(m)
	e.net.FindChanGeom(m)
	e.net.FindHydrGeom(m)
	inlet := e.net.InletNode()
	for {
		for _, i := range m.Ord {
			m.Nodes[i].Qsin = 0.
		}

		// Rate pass: set qs, qsin and dzdt on every active node.
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			cap := e.sedTrans.TransCapacity(m, i)
			pedr := (cn.Qsin - cap) / cn.VArea
			if i == inlet {
				pedr += e.net.InSedLoad() / cn.VArea
			}
			if cn.OnBedrock() && pedr < 0. {
				dcap := -e.bedErode.DetachCapacity(m, i)
				if dcap > pedr {
					pedr = dcap
				}
			}
			cn.DzDt = pedr
			if cn.Ds >= 0 {
				m.Nodes[cn.Ds].Qsin += cn.Qsin - pedr*cn.VArea
			}
		}

		// Largest step that converging node pairs tolerate.
		dtmax := dtg / frac
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			if cn.Ds < 0 {
				continue
			}
			dn := &m.Nodes[cn.Ds]
			if ratediff := dn.DzDt - cn.DzDt; ratediff > 0. && cn.Z > dn.Z {
				if dt := (cn.Z - dn.Z) / ratediff; dt < dtmax {
					dtmax = dt
				}
			}
		}
		dtmax *= frac
		if dtmax < smallts {
			dtmax = smallts
		}

		// Influx rebuilt during the apply pass; the inlet feeds first.
		for _, i := range m.Ord {
			m.Nodes[i].Qsin = 0.
		}
		if inlet >= 0 {
			m.Nodes[inlet].Qsin = e.net.InSedLoad()
		}

		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			dz := ((cn.Qsin - cn.Qs) / cn.VArea) * dtmax
			if cn.OnBedrock() && dz < 0. {
				dzr := cn.DrDt * dtmax
				if -dz > -dzr+cn.AlluvThickness() {
					dz = dzr - cn.AlluvThickness()
				}
			}
			m.EroDep(i, dz)
			if cn.Ds >= 0 {
				m.Nodes[cn.Ds].Qsin += cn.Qsin - dz*cn.VArea/dtmax
			}
		}

		dtg -= dtmax
		if dtg <= 1e-6 {
			break
		}
	}
}
