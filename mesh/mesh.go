package mesh

// Mesh is the computational arena of the erosion model: a set of nodes
// (Voronoi cells) joined by edges, with flow directed from every active node
// to exactly one downstream neighbour (a forest draining to the boundary).
type Mesh struct {
	Nodes     []Node
	Edges     []Edge  // undirected; one entry per shared voronoi face
	Nbr       [][]int // adjacent node indices
	Ord       []int   // upslope-to-downslope order of active node indices
	Cids      []int   // source grid-cell id per node (meshes built from a TEM)
	Numg      int     // number of grain-size classes
	MaxRegDep float64 // maximum active regolith layer thickness [m]
	Kr        float64 // erodibility given to newly deposited sediment layers
}

// Edge joins two nodes that share a voronoi face.
type Edge struct {
	A, B int     // node array indices, A taken as origin
	Len  float64 // node spacing [m]
	VLen float64 // shared voronoi face width [m]
}

// Slope returns node i's downstream gradient, positive downhill.
func (m *Mesh) Slope(i int) float64 {
	n := &m.Nodes[i]
	if n.Ds < 0 {
		return 0.
	}
	return (n.Z - m.Nodes[n.Ds].Z) / n.FLen
}

// EdgeSlope returns the gradient from edge origin A to destination B.
func (m *Mesh) EdgeSlope(e *Edge) float64 {
	return (m.Nodes[e.A].Z - m.Nodes[e.B].Z) / e.Len
}

// Copy returns a deep copy, used to keep a pristine domain during calibration.
func (m *Mesh) Copy() *Mesh {
	c := *m
	c.Nodes = make([]Node, len(m.Nodes))
	copy(c.Nodes, m.Nodes)
	for i := range c.Nodes {
		nd := &c.Nodes[i]
		nd.Lays = append([]Layer(nil), nd.Lays...)
		for j := range nd.Lays {
			nd.Lays[j].Dgrade = append([]float64(nil), nd.Lays[j].Dgrade...)
		}
		nd.Qsm = append([]float64(nil), nd.Qsm...)
		nd.Qsinm = append([]float64(nil), nd.Qsinm...)
	}
	c.Edges = append([]Edge(nil), m.Edges...)
	c.Ord = append([]int(nil), m.Ord...)
	c.Cids = append([]int(nil), m.Cids...)
	c.Nbr = make([][]int, len(m.Nbr))
	for i, v := range m.Nbr {
		c.Nbr[i] = append([]int(nil), v...)
	}
	return &c
}
