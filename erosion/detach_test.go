package erosion

import "testing"

func TestDetachMonotonicInDischarge(t *testing.T) {
	b := NewBedErodePwrLaw(detachParams())
	m := lineMesh(2, 0.01, 1., 0.5, 1)
	m.Nodes[0].HydrWidth = 1.
	prev := 0.
	for _, q := range []float64{1., 2., 5., 10., 50., 200.} {
		m.Nodes[0].Q = q
		if cap := b.DetachCapacity(m, 0); cap < prev {
			t.Errorf("capacity fell from %g to %g as Q rose to %g", prev, cap, q)
		} else {
			prev = cap
		}
	}
}

func TestDetachMonotonicInSlope(t *testing.T) {
	b := NewBedErodePwrLaw(detachParams())
	m := lineMesh(2, 0.001, 10., 0.5, 1)
	m.Nodes[0].HydrWidth = 1.
	prev := 0.
	for _, s := range []float64{0.001, 0.005, 0.01, 0.05, 0.1} {
		m.Nodes[0].Z = m.Nodes[1].Z + s*m.Nodes[0].FLen
		if cap := b.DetachCapacity(m, 0); cap < prev {
			t.Errorf("capacity fell from %g to %g as slope rose to %g", prev, cap, s)
		} else {
			prev = cap
		}
	}
}

func TestDetachFloodedIsZero(t *testing.T) {
	b := NewBedErodePwrLaw(detachParams())
	m := lineMesh(2, 0.01, 10., 0.5, 1)
	m.Nodes[0].HydrWidth = 1.
	m.Nodes[0].Flooded = true
	if cap := b.DetachCapacity(m, 0); cap != 0. {
		t.Errorf("flooded capacity = %g, want 0", cap)
	}
}

func TestDetachBelowThresholdIsZero(t *testing.T) {
	b := NewBedErodePwrLaw(detachParams())
	m := lineMesh(2, 0.01, 10., 0.5, 1)
	m.Nodes[0].HydrWidth = 1.
	m.Nodes[0].TauC = 1e9
	if cap := b.DetachCapacity(m, 0); cap != 0. {
		t.Errorf("sub-threshold capacity = %g, want 0", cap)
	}
	if m.Nodes[0].Tau <= 0. {
		t.Errorf("shear stress not stored on the node")
	}
}

func TestDetachDepthIsRateTimesDuration(t *testing.T) {
	b := NewBedErodePwrLaw(detachParams())
	m := lineMesh(2, 0.01, 10., 0.5, 1)
	m.Nodes[0].HydrWidth = 1.
	rate := b.DetachCapacity(m, 0)
	if rate <= 0. {
		t.Fatal("expected a positive detachment rate")
	}
	if dz := b.DetachCapacityDt(m, 0, 3.); !almost(dz, 3.*rate, 1e-12*rate) {
		t.Errorf("depth over 3 yr = %g, want %g", dz, 3.*rate)
	}
}

func TestDetachNegativeSlopePanics(t *testing.T) {
	b := NewBedErodePwrLaw(detachParams())
	m := lineMesh(2, 0.01, 10., 0.5, 1)
	m.Nodes[0].HydrWidth = 1.
	m.Nodes[0].Z = m.Nodes[1].Z - 1. // adverse gradient
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on negative slope")
		}
	}()
	b.DetachCapacity(m, 0)
}

func TestSetTimeStepSentinel(t *testing.T) {
	b := NewBedErodePwrLaw(detachParams())
	m := lineMesh(2, 0.01, 0., 0.5, 1) // no discharge, no detachment wave
	if dt := b.SetTimeStep(m, 0); dt != 100000. {
		t.Errorf("slack-bed step = %g, want the 100000 sentinel", dt)
	}
	m.Nodes[0].Q = 10.
	if dt := b.SetTimeStep(m, 0); dt <= 0. || dt >= 100000. {
		t.Errorf("active-bed step = %g, want finite positive", dt)
	}
}
