package child

// ConstantUplift raises the whole active domain at a single rate
// [m/yr].
type ConstantUplift struct {
	U float64
}

func (u ConstantUplift) Rate(x, y float64) float64 { return u.U }

// FaultBlockUplift raises only the footwall block north of an
// east-west fault trace.
type FaultBlockUplift struct {
	U      float64 // uplift rate [m/yr]
	FaultY float64 // fault trace position
}

func (u FaultBlockUplift) Rate(x, y float64) float64 {
	if y > u.FaultY {
		return u.U
	}
	return 0.
}

// applyUplift raises every active node by its local rock uplift over
// dt; boundary nodes hold base level.
func (d *Domain) applyUplift(dt float64) {
	if d.Up == nil {
		return
	}
	for i := range d.M.Nodes {
		cn := &d.M.Nodes[i]
		if cn.Bound {
			continue
		}
		cn.Z += d.Up.Rate(cn.X, cn.Y) * dt
	}
}
