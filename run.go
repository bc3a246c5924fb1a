package child

import (
	"github.com/SiccarPoint/child/erosion"
	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
)

// Run steps the model over its full runtime, writing gridded state to
// outdir every interval, and returns the sampled mean-elevation
// series. With a steady-state tolerance set, the run stops as soon as
// the long-term rate of elevation change falls inside it.
func (d *Domain) Run(outdir string) []float64 {
	mmio.MakeDir(outdir)
	return d.run(outdir, false)
}

// RunQuiet steps the model without writing or progress reporting, for
// calibration loops.
func (d *Domain) RunQuiet() []float64 {
	return d.run("", true)
}

func (d *Domain) run(outdir string, quiet bool) []float64 {
	nstep := d.NSteps()
	var bar *uiprogress.Bar
	if !quiet {
		uiprogress.Start()
		bar = uiprogress.AddBar(nstep).AppendCompleted().PrependElapsed()
	}

	means := make([]float64, 0, nstep)
	t := 0.
	for s := 0; s < nstep; s++ {
		dt := d.opintrvl
		if t+dt > d.runtime {
			dt = d.runtime - t
		}

		d.Net.RouteFlow(d.M)
		switch {
		case d.detachlim && d.Up != nil:
			d.Ero.ErodeDetachLimU(dt, d.Up)
		case d.detachlim:
			d.Ero.ErodeDetachLim(dt)
		case d.M.Numg > 1:
			d.Ero.DetachErode(dt, t)
		default:
			d.Ero.StreamErode(dt)
		}
		d.Ero.Diffuse(dt, d.nodepo)
		d.applyUplift(dt)
		if d.exptime {
			d.Ero.UpdateExposureTime(dt)
		}
		t += dt

		if d.Eq == nil {
			d.Eq = erosion.NewEquilibCheck(d.M, d.f, t)
		} else {
			d.Eq.FindLongTermChngRate(t)
		}
		means = append(means, d.MeanElev())
		d.Ero.DensifyMesh(t)

		if !quiet {
			d.writeOutputs(outdir, s)
			bar.Incr()
		}
		if d.steadyTol > 0. && len(means) > 1 {
			if r := d.Eq.LongRate(); r < d.steadyTol && r > -d.steadyTol {
				break // near steady state
			}
		}
	}
	if !quiet {
		uiprogress.Stop()
	}
	return means
}
