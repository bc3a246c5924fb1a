package mesh

// NewLine builds a single-profile mesh: n nodes spaced dx apart on a uniform
// gradient s0 falling to an open outlet at the last node. Stratigraphy is
// left to SeedStrat.
func NewLine(n int, dx, s0 float64, numg int) *Mesh {
	m := &Mesh{Nodes: make([]Node, n), Numg: numg, MaxRegDep: 1.}
	for i := range m.Nodes {
		nd := &m.Nodes[i]
		nd.X = float64(i) * dx
		nd.Z = float64(n-1-i) * s0 * dx
		nd.VArea = dx * dx
		nd.FLen = dx
		nd.Ds = i + 1
	}
	out := &m.Nodes[n-1]
	out.Ds = -1
	out.Bound = true
	m.Nbr = make([][]int, n)
	for i := 0; i < n-1; i++ {
		m.Edges = append(m.Edges, Edge{A: i, B: i + 1, Len: dx, VLen: dx})
		m.Nbr[i] = append(m.Nbr[i], i+1)
		m.Nbr[i+1] = append(m.Nbr[i+1], i)
		m.Ord = append(m.Ord, i)
	}
	return m
}

// NewBlock builds an nx by ny raster-like mesh with its perimeter held as
// boundary nodes. Interior elevations and downstream assignments are left to
// the caller (see stream.Net.RouteFlow); stratigraphy to SeedStrat.
func NewBlock(nx, ny int, dx float64, numg int) *Mesh {
	m := &Mesh{Nodes: make([]Node, nx*ny), Numg: numg, MaxRegDep: 1.}
	id := func(ix, iy int) int { return iy*nx + ix }
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			nd := &m.Nodes[id(ix, iy)]
			nd.X = float64(ix) * dx
			nd.Y = float64(iy) * dx
			nd.VArea = dx * dx
			nd.FLen = dx
			nd.Ds = -1
			if ix == 0 || iy == 0 || ix == nx-1 || iy == ny-1 {
				nd.Bound = true
			}
		}
	}
	m.Nbr = make([][]int, nx*ny)
	edge := func(a, b int) {
		m.Edges = append(m.Edges, Edge{A: a, B: b, Len: dx, VLen: dx})
		m.Nbr[a] = append(m.Nbr[a], b)
		m.Nbr[b] = append(m.Nbr[b], a)
	}
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			if ix < nx-1 {
				edge(id(ix, iy), id(ix+1, iy))
			}
			if iy < ny-1 {
				edge(id(ix, iy), id(ix, iy+1))
			}
		}
	}
	return m
}
