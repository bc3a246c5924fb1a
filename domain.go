// Package child assembles a landscape-evolution model realization: a
// mesh arena, a drainage net, the erosion engine and an uplift field,
// stepped together through time.
package child

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/SiccarPoint/child/erosion"
	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
	"github.com/SiccarPoint/child/stream"
)

// Domain is one model realization over a mesh.
type Domain struct {
	M   *mesh.Mesh
	Net *stream.Net
	Ero *erosion.Erosion
	Eq  *erosion.EquilibCheck
	Up  erosion.Uplift
	f   *input.File

	runtime   float64 // total simulated time [yr]
	opintrvl  float64 // outer step and output interval [yr]
	steadyTol float64 // long-term rate below which the run stops early [m/yr]; 0 = run out the clock
	detachlim bool    // detachment-limited channel erosion
	nodepo    bool    // hillslope diffusion without deposition
	exptime   bool    // track surface-layer exposure time
}

// NewDomain builds a ready-to-run model from an input-parameter set.
// The mesh comes from a grid definition and topological DEM when
// GDEFFILE/HDEMFILE name them, otherwise a synthetic block of
// XNODES by YNODES cells is raised and perturbed.
func NewDomain(f *input.File) (*Domain, error) {
	numg := int(f.ItemDefault("NUMGRNSIZE", 1.))

	var m *mesh.Mesh
	if f.Has("GDEFFILE") && f.Has("HDEMFILE") {
		var err error
		m, err = mesh.FromTEM(f.Text("GDEFFILE"), f.Text("HDEMFILE"), numg)
		if err != nil {
			return nil, fmt.Errorf(" NewDomain: %v", err)
		}
	} else {
		nx, ny := int(f.Item("XNODES")), int(f.Item("YNODES"))
		dx := f.Item("GRID_SPACING")
		m = mesh.NewBlock(nx, ny, dx, numg)
		// tilted surface with a light perturbation; the tilt dominates
		// the noise so every cell drains without pit filling
		relief := f.ItemDefault("INITELEV", 1.)
		ymax := float64(ny-1) * dx
		rng := rand.New(rand.NewSource(int64(f.ItemDefault("SEED", 1.))))
		for i := range m.Nodes {
			if !m.Nodes[i].Bound {
				m.Nodes[i].Z = relief * (m.Nodes[i].Y/ymax + 0.001*rng.Float64())
			}
		}
	}
	m.MaxRegDep = f.ItemDefault("MAXREGDEPTH", 1.)

	kb := f.Item("KB")
	kr := f.ItemDefault("KR", kb)
	var frac []float64
	if numg > 1 && f.Has("BRPROPORTION1") {
		frac = make([]float64, numg)
		for j := 0; j < numg; j++ {
			frac[j] = f.Item(fmt.Sprintf("BRPROPORTION%d", j+1))
		}
	}
	m.SeedStrat(f.ItemDefault("REGINIT", 0.), kr, kb, frac)

	net := stream.New(f, numg)
	net.RouteFlow(m)

	d := &Domain{
		M:         m,
		Net:       net,
		Ero:       erosion.New(m, net, f),
		f:         f,
		runtime:   f.Item("RUNTIME"),
		opintrvl:  f.Item("OPINTRVL"),
		steadyTol: f.ItemDefault("STEADYTOL", 0.),
		detachlim: f.ItemDefault("OPTDETACHLIM", 0.) > 0.,
		nodepo:    f.ItemDefault("OPTNODEPOSITION", 0.) > 0.,
		exptime:   f.ItemDefault("OPTEXPOSURETIME", 0.) > 0.,
	}

	switch int(f.ItemDefault("UPTYPE", 0.)) {
	case 1:
		d.Up = ConstantUplift{U: f.Item("UPRATE")}
	case 2:
		d.Up = FaultBlockUplift{U: f.Item("UPRATE"), FaultY: f.Item("FAULTPOS")}
	}
	return d, nil
}

// MeanElev is the area-weighted mean elevation of the active nodes [m].
func (d *Domain) MeanElev() float64 {
	mass, area := 0., 0.
	for i := range d.M.Nodes {
		cn := &d.M.Nodes[i]
		if cn.Bound {
			continue
		}
		mass += cn.Z * cn.VArea
		area += cn.VArea
	}
	return mass / area
}

// NSteps is the number of outer steps the run will take.
func (d *Domain) NSteps() int {
	return int(math.Ceil(d.runtime / d.opintrvl))
}
