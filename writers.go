package child

import (
	"fmt"

	"github.com/maseology/mmio"
)

// writeOutputs saves the gridded state of step s: elevation, shear
// stress and sediment outflux per node, as flat float32 binaries in
// node order.
func (d *Domain) writeOutputs(outdir string, s int) {
	n := len(d.M.Nodes)
	zs, taus, qss := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range d.M.Nodes {
		cn := &d.M.Nodes[i]
		zs[i] = cn.Z
		taus[i] = cn.Tau
		qss[i] = cn.Qs
	}
	mmio.WriteFloats(fmt.Sprintf("%sz.%05d.bin", outdir, s), zs)
	mmio.WriteFloats(fmt.Sprintf("%stau.%05d.bin", outdir, s), taus)
	mmio.WriteFloats(fmt.Sprintf("%sqs.%05d.bin", outdir, s), qss)
}

// WriteSummary saves the final surface keyed by source grid-cell id
// (meshes built from a TEM) so results map straight back onto the
// originating raster: elevation, alluvium thickness and the surface
// layer's exposure time.
func (d *Domain) WriteSummary(outdir string) {
	if len(d.M.Cids) != len(d.M.Nodes) {
		return
	}
	zx := make(map[int]float64, len(d.M.Cids))
	ax := make(map[int]float64, len(d.M.Cids))
	ex := make(map[int]float64, len(d.M.Cids))
	for i, cid := range d.M.Cids {
		cn := &d.M.Nodes[i]
		zx[cid] = cn.Z
		ax[cid] = cn.AlluvThickness()
		ex[cid] = cn.Lays[0].Etime
	}
	mmio.WriteRMAP(outdir+"z.rmap", zx, false)
	mmio.WriteRMAP(outdir+"alluv.rmap", ax, false)
	mmio.WriteRMAP(outdir+"etime.rmap", ex, false)
}
