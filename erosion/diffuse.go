package erosion

// Diffuse moves sediment by hillslope creep over rt [yr]. The volume
// rate across the voronoi face shared by an edge pair is kd*S*Lv,
// positive downhill; each node's net exchange divided by its cell area
// gives the elevation change. Sub-steps obey a Courant bound taken
// over all edges once up front. With noDepo set, material only ever
// leaves a node, on the assumption that streams flush what creep
// delivers to the hollows.
func (e *Erosion) Diffuse(rt float64, noDepo bool) {
	m := e.m
	dtmax := rt
	for k := range m.Edges {
		ce := &m.Edges[k]
		if denom := e.kd * ce.VLen; denom > 1e-6 {
			if delt := 0.1 * (ce.Len / denom); delt < dtmax {
				dtmax = delt
			}
		}
	}

	for rt > 0. {
		for i := range m.Nodes {
			if !m.Nodes[i].Bound {
				m.Nodes[i].Qsin = 0.
			}
		}
		for k := range m.Edges {
			ce := &m.Edges[k]
			volout := e.kd * m.EdgeSlope(ce) * ce.VLen * dtmax
			m.Nodes[ce.A].Qsin -= volout
			m.Nodes[ce.B].Qsin += volout
		}
		for i := range m.Nodes {
			cn := &m.Nodes[i]
			if cn.Bound {
				continue
			}
			if noDepo && cn.Qsin > 0. {
				cn.Qsin = 0.
			}
			m.EroDep(i, cn.Qsin/cn.VArea)
		}
		rt -= dtmax
		if dtmax > rt {
			dtmax = rt
		}
	}
}
