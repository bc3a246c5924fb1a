package erosion

import (
	"log"

	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

const (
	rho        = 1000.     // water density [kg/m³]
	rhosed     = 2650.     // sediment density [kg/m³]
	grav       = 9.81      // [m/s²]
	secperyear = 31536000. // [s/yr]
	yearpersec = 3.171e-8  // [yr/s]
	smallts    = 1e-8      // floor on a sub-step length [yr]
)

// Detacher computes the rate (or depth) at which flow can detach intact
// bed material at a node. Implementations set node Tau and DrDt as a
// side effect of the rate forms.
type Detacher interface {
	DetachCapacity(m *mesh.Mesh, i int) float64               // rate, surface-layer erodibility [m/yr]
	DetachCapacityLay(m *mesh.Mesh, i, lyr int) float64       // rate, erodibility of layer lyr [m/yr]
	DetachCapacityDt(m *mesh.Mesh, i int, dt float64) float64 // depth over dt [m]
	SetTimeStep(m *mesh.Mesh, i int) float64                  // stable step estimate [yr]
}

// Transporter computes volumetric sediment transport capacity at a node.
// The whole-node form overwrites the node's per-size capacities; the
// layer form scales capacity by the exposed fraction of one layer and
// accumulates onto them.
type Transporter interface {
	TransCapacity(m *mesh.Mesh, i int) float64                         // [m³/yr]
	TransCapacityLay(m *mesh.Mesh, i, lyr int, weight float64) float64 // [m³/yr]
}

// StreamNet supplies drainage order, channel geometry and external
// sediment feed to the erosion drivers.
type StreamNet interface {
	SortNodesByNetOrder(m *mesh.Mesh)
	FindChanGeom(m *mesh.Mesh)
	FindHydrGeom(m *mesh.Mesh)
	RainRate() float64 // [m/yr]
	Infilt() float64   // [m/yr]
	InletNode() int    // node index, -1 when no inlet
	InSedLoad() float64
	InSedLoads() []float64
}

// Uplift returns the rock uplift rate at a point [m/yr].
type Uplift interface {
	Rate(x, y float64) float64
}

// Refiner adds resolution around a node; used when mesh densification
// by erosion flux is switched on.
type Refiner interface {
	AddNodesAround(i int, t float64)
}

// Erosion bundles one detachment law, one transport law and the
// hillslope diffusivity acting on a mesh.
type Erosion struct {
	m        *mesh.Mesh
	net      StreamNet
	bedErode Detacher
	sedTrans Transporter
	kd       float64 // hillslope transport (diffusion) coefficient [m²/yr]
	maxflux  float64 // node flux triggering densification [m³/yr]; 0 = off
	ref      Refiner
}

// New builds the erosion engine from keyword input. The transport law
// is selected by TRANSLAW: 0 power-law (default), 1 multi-size
// power-law, 2 sand/gravel two-fraction, 3 mine tailings.
func New(m *mesh.Mesh, net StreamNet, f *input.File) *Erosion {
	if m == nil || net == nil {
		log.Fatalln(" erosion.New: nil mesh or stream network")
	}
	e := &Erosion{m: m, net: net, kd: f.Item("KD")}
	if f.ItemDefault("OPTMESHADAPTDZ", 0.) > 0. {
		e.maxflux = f.Item("MESHADAPT_MAXNODEFLUX")
	}
	be := NewBedErodePwrLaw(f)
	e.bedErode = be
	for i := range m.Nodes {
		if m.Nodes[i].TauC == 0. {
			m.Nodes[i].TauC = be.taucd
		}
	}
	switch int(f.ItemDefault("TRANSLAW", 0.)) {
	case 1:
		e.sedTrans = NewSedTransPwrLawMulti(f)
	case 2:
		e.sedTrans = NewSedTransWilcock(f)
	case 3:
		e.sedTrans = NewSedTransMineTailings(f)
	default:
		e.sedTrans = NewSedTransPwrLaw(f)
	}
	return e
}

// SetRefiner attaches the mesh refiner consulted by DensifyMesh.
func (e *Erosion) SetRefiner(r Refiner) { e.ref = r }
