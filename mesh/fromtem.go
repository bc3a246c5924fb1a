package mesh

import (
	"fmt"
	"math"

	"github.com/maseology/goHydro/grid"
	"github.com/maseology/goHydro/tem"
)

// FromTEM assembles an erosion mesh from a grid definition and a topological
// DEM. Nodes are laid out in upslope-to-downslope (topologically safe)
// order; farfield cells become fixed-base-level boundary nodes.
func FromTEM(gdefFP, hdemFP string, numg int) (*Mesh, error) {
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return nil, fmt.Errorf(" mesh.FromTEM: %v", err)
	}
	if len(gd.Sactives) <= 0 {
		return nil, fmt.Errorf(" mesh.FromTEM: grid definition requires active cells")
	}

	fmt.Printf(" loading topological DEM: %s\n", hdemFP)
	var dem tem.TEM
	if err := dem.New(hdemFP); err != nil {
		return nil, fmt.Errorf(" mesh.FromTEM tem.New: %v", err)
	}
	for _, c := range gd.Sactives {
		if _, ok := dem.TEC[c]; !ok {
			return nil, fmt.Errorf(" mesh.FromTEM: cell id %d not found in %s", c, hdemFP)
		}
		if dem.TEC[c].Z == -9999. {
			fmt.Printf("   WARNING no elevation assigned to cell %d\n", c)
		}
	}

	cids, ds := dem.DownslopeContributingAreaIDs(-1)
	nc := len(cids)
	mx := make(map[int]int, nc) // grid cell id to node array index
	for i, cid := range cids {
		mx[cid] = i
	}

	m := &Mesh{Nodes: make([]Node, nc), Cids: cids, Numg: numg, MaxRegDep: 1.}
	ca := gd.Cwidth * gd.Cwidth
	ucnt := dem.ContributingCellMap(-1)
	for i, cid := range cids {
		nd := &m.Nodes[i]
		xy := gd.Coord[cid]
		nd.X, nd.Y = xy.X, xy.Y
		nd.Z = dem.TEC[cid].Z
		nd.VArea = ca
		nd.FLen = gd.Cwidth
		if n, ok := ucnt[cid]; ok {
			nd.DrArea = float64(n) * ca
		}
		if v, ok := ds[cid]; ok && v >= 0 {
			nd.Ds = mx[v]
		} else {
			nd.Ds = -1
			nd.Bound = true
		}
	}

	// flow links double as diffusion edges; the voronoi face width of a
	// raster-derived cell is taken as the cell width
	m.Nbr = make([][]int, nc)
	for i := range m.Nodes {
		nd := &m.Nodes[i]
		d := nd.Ds
		if d < 0 {
			continue
		}
		nd.FLen = math.Hypot(m.Nodes[d].X-nd.X, m.Nodes[d].Y-nd.Y)
		if nd.FLen == 0. {
			nd.FLen = gd.Cwidth
		}
		m.Edges = append(m.Edges, Edge{A: i, B: d, Len: nd.FLen, VLen: gd.Cwidth})
		m.Nbr[i] = append(m.Nbr[i], d)
		m.Nbr[d] = append(m.Nbr[d], i)
	}

	// cids are already topologically ordered
	for i := range m.Nodes {
		if !m.Nodes[i].Bound {
			m.Ord = append(m.Ord, i)
		}
	}
	return m, nil
}
