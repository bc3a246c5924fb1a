package erosion

import (
	"github.com/SiccarPoint/child/input"
	"github.com/SiccarPoint/child/mesh"
)

// EquilibCheck watches the area-weighted mean elevation of the active
// nodes through time and reports its rate of change, both short term
// (last two samples) and long term (over a look-back window). A run is
// near steady state when the long rate approaches zero.
type EquilibCheck struct {
	m         *mesh.Mesh
	hist      [][2]float64 // (time, mean elevation) samples
	longTime  float64      // look-back window [yr]; 0 mirrors the short rate
	longRate  float64      // [m/yr]
	shortRate float64      // [m/yr]
}

// NewEquilibCheck starts tracking m with a first sample at time t. The
// look-back window comes from the EQUITIME keyword when f carries one.
func NewEquilibCheck(m *mesh.Mesh, f *input.File, t float64) *EquilibCheck {
	ec := &EquilibCheck{m: m}
	if f != nil {
		ec.longTime = f.ItemDefault("EQUITIME", 0.)
	}
	ec.FindIterChngRate(t)
	return ec
}

// LongTime returns the current look-back window [yr].
func (ec *EquilibCheck) LongTime() float64 { return ec.longTime }

// SetLongTime sets the look-back window, clamping negatives to zero.
func (ec *EquilibCheck) SetLongTime(v float64) {
	if v > 0. {
		ec.longTime = v
	} else {
		ec.longTime = 0.
	}
}

// LongRate returns the last computed long-term rate [m/yr].
func (ec *EquilibCheck) LongRate() float64 { return ec.longRate }

// ShortRate returns the last computed iteration rate [m/yr].
func (ec *EquilibCheck) ShortRate() float64 { return ec.shortRate }

// FindIterChngRate samples the mean active elevation at time t and
// returns the rate of change since the previous sample. The first
// sample rates against elevation zero at time zero.
func (ec *EquilibCheck) FindIterChngRate(t float64) float64 {
	mass, area := 0., 0.
	for i := range ec.m.Nodes {
		n := &ec.m.Nodes[i]
		if n.Bound {
			continue
		}
		mass += n.Z * n.VArea
		area += n.VArea
	}
	mean := mass / area
	if len(ec.hist) > 0 {
		last := ec.hist[len(ec.hist)-1]
		dt := t - last[0]
		if dt <= 0. {
			panic(" EquilibCheck.FindIterChngRate: nonincreasing sample time")
		}
		ec.shortRate = (mean - last[1]) / dt
	} else {
		if t <= 0. {
			panic(" EquilibCheck.FindIterChngRate: first sample needs t > 0")
		}
		ec.shortRate = mean / t
	}
	ec.hist = append(ec.hist, [2]float64{t, mean})
	return ec.shortRate
}

// FindLongTermChngRate samples at time t and returns the mean rate of
// elevation change spanning at least the look-back window.
func (ec *EquilibCheck) FindLongTermChngRate(t float64) float64 {
	ec.FindIterChngRate(t)
	last := ec.hist[len(ec.hist)-1]
	if ec.longTime == 0. || len(ec.hist) == 1 {
		ec.longRate = ec.shortRate
		return ec.longRate
	}
	// compare against the earliest sample inside the window; a window
	// tighter than the sample spacing falls back to the previous sample
	target := last[0] - ec.longTime
	ca := ec.hist[len(ec.hist)-2]
	for k := 0; k < len(ec.hist)-1; k++ {
		if ec.hist[k][0] >= target {
			ca = ec.hist[k]
			break
		}
	}
	dt := last[0] - ca[0]
	if dt <= 0. {
		panic(" EquilibCheck.FindLongTermChngRate: degenerate sample window")
	}
	ec.longRate = (last[1] - ca[1]) / dt
	return ec.longRate
}

// FindLongTermChngRateOver resets the look-back window to w and samples
// at time t.
func (ec *EquilibCheck) FindLongTermChngRateOver(t, w float64) float64 {
	ec.SetLongTime(w)
	return ec.FindLongTermChngRate(t)
}
