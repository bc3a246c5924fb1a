package mesh

// Node holds the full state of one mesh vertex and its voronoi cell.
type Node struct {
	Lays                            []Layer   // stratigraphy, surface layer first
	Qsm                             []float64 // transport capacity/outflux per grain size [m³/yr]
	Qsinm                           []float64 // sediment influx per grain size [m³/yr]
	X, Y                            float64
	Z                               float64 // elevation [m]
	VArea                           float64 // voronoi cell area [m²]
	DrArea                          float64 // drainage area [m²]
	Q                               float64 // discharge [m³/yr]
	HydrWidth, HydrDepth, HydrRough float64 // at-a-station hydraulic geometry
	ChanWidth, ChanDepth            float64 // bankfull channel geometry
	Qs, Qsin                        float64 // total sediment capacity/influx [m³/yr]
	DrDt, DzDt                      float64 // detachment and net elevation-change rate [m/yr]
	Tau                             float64 // last computed shear stress [Pa]
	TauC                            float64 // critical shear stress [Pa]
	FLen                            float64 // distance to the downstream neighbour [m]
	Ds                              int     // downstream node index; -1 at outlets
	Flooded                         bool    // ponded; capacity laws yield zero
	Bound                           bool    // boundary node; fixed elevation, never eroded
}

// AddQs accumulates capacity for size class j, also updating the total.
func (n *Node) AddQs(j int, v float64) {
	n.Qsm[j] += v
	n.Qs += v
}

// AddQsin accumulates influx for size class j, also updating the total.
func (n *Node) AddQsin(j int, v float64) {
	n.Qsinm[j] += v
	n.Qsin += v
}

// SetQs overwrites the capacity of size class j and rebuilds the total
// from the classes, so the scalar stays consistent even after it was
// driven separately.
func (n *Node) SetQs(j int, v float64) {
	n.Qsm[j] = v
	t := 0.
	for _, q := range n.Qsm {
		t += q
	}
	n.Qs = t
}

// SetQsin overwrites the influx of size class j and rebuilds the total
// from the classes.
func (n *Node) SetQsin(j int, v float64) {
	n.Qsinm[j] = v
	t := 0.
	for _, q := range n.Qsinm {
		t += q
	}
	n.Qsin = t
}

func (n *Node) ResetQs() {
	n.Qs = 0.
	for j := range n.Qsm {
		n.Qsm[j] = 0.
	}
}

func (n *Node) ResetQsin() {
	n.Qsin = 0.
	for j := range n.Qsinm {
		n.Qsinm[j] = 0.
	}
}

// AlluvThickness is the total sediment cover above the first rock layer [m].
func (n *Node) AlluvThickness() float64 {
	t := 0.
	for i := range n.Lays {
		if n.Lays[i].Rock {
			break
		}
		t += n.Lays[i].Depth()
	}
	return t
}

// OnBedrock reports whether rock is exposed at the surface.
func (n *Node) OnBedrock() bool {
	return len(n.Lays) > 0 && n.Lays[0].Rock
}

func (n *Node) insertLay(i int, l Layer) {
	n.Lays = append(n.Lays, Layer{})
	copy(n.Lays[i+1:], n.Lays[i:])
	n.Lays[i] = l
}

func (n *Node) removeLay(i int) {
	n.Lays = append(n.Lays[:i], n.Lays[i+1:]...)
}
