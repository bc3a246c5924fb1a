package erosion

import "math"

// StreamErodeMulti advances transport-limited erosion of several grain
// sizes over dtg [yr], stamping layer activity with the model time.
// Where less than the active depth of sediment mantles the bed, rock
// is cut underneath and its grading added to the load.
func (e *Erosion) StreamErodeMulti(dtg, time float64) {
	const frac = 0.3
	m := e.m
	numg := m.Numg
	timegb := time // running model time for layer stamps
	e.net.SortNodesByNetOrder(m)
	e.net.FindChanGeom(m)
	e.net.FindHydrGeom(m)
	inlet := e.net.InletNode()

	dz := make([]float64, numg)  // per-size capacity balance depth
	dzr := make([]float64, numg) // potential rock scour depth
	zero := make([]float64, numg)

	for {
		for _, i := range m.Ord {
			m.Nodes[i].ResetQs()
			m.Nodes[i].ResetQsin()
		}

		// Rate pass, totals only; per-size capacities fall out of the
		// whole-node law along the way.
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			var pedr float64
			if !cn.OnBedrock() {
				cap := e.sedTrans.TransCapacity(m, i)
				pedr = (cn.Qsin - cap) / cn.VArea
				if i == inlet {
					pedr += e.net.InSedLoad() / cn.VArea
				}
				if cn.Lays[1].Rock && pedr < 0. && math.Abs(cn.Lays[0].Depth()-m.MaxRegDep) > 0.001 {
					// thin mantle: cut the rock below, throttled by cover
					dcap := -e.bedErode.DetachCapacity(m, i) * (1. - cn.Lays[0].Depth()/m.MaxRegDep)
					pedr += dcap
				}
			} else {
				pedr = -e.bedErode.DetachCapacity(m, i)
			}
			cn.DzDt = pedr
			if cn.Ds >= 0 {
				m.Nodes[cn.Ds].Qsin += cn.Qsin - pedr*cn.VArea
			}
		}

		dtmax := dtg / frac
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			if cn.Ds < 0 {
				continue
			}
			dn := &m.Nodes[cn.Ds]
			if ratediff := dn.DzDt - cn.DzDt; ratediff > 0. && cn.Z > dn.Z {
				dt := (cn.Z - dn.Z) / ratediff
				if dt < dtmax {
					dtmax = dt
				}
				if dt < 1e-6 {
					dtmax = 0.005
				}
			}
		}
		dtmax *= frac

		for _, i := range m.Ord {
			m.Nodes[i].ResetQsin()
		}

		timegb += dtmax
		// Apply pass: balance each size, cut rock where exposed or
		// thinly mantled, and pass the realized flux downstream.
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			dzt := 0.
			for j := 0; j < numg; j++ {
				dz[j] = ((cn.Qsinm[j] - cn.Qsm[j]) / cn.VArea) * dtmax
				dzt += dz[j]
			}
			retbr, retsed := zero, zero

			dzrt := 0.
			if cn.OnBedrock() {
				ld := cn.Lays[0].Depth()
				for j := 0; j < numg; j++ {
					dzr[j] = cn.DrDt * cn.Lays[0].Dgrade[j] / ld * dtmax
					dzrt += dzr[j]
				}
				if dzrt < 0. {
					retbr = m.EroDepL(i, 0, dzr, timegb)
				}
			} else if math.Abs(cn.Lays[0].Depth()-m.MaxRegDep) > 0.001 && dzt < 0. && cn.Lays[1].Rock {
				ld := cn.Lays[1].Depth()
				cover := (m.MaxRegDep - cn.Lays[0].Depth()) / m.MaxRegDep
				for j := 0; j < numg; j++ {
					dzr[j] = cn.DrDt * cn.Lays[1].Dgrade[j] / ld * dtmax * cover
					dzrt += dzr[j]
				}
				if dzrt < 0. {
					retbr = m.EroDepL(i, 1, dzr, timegb)
				}
			}

			if math.Abs(dzt) > 0. {
				retsed = m.EroDepL(i, 0, dz, timegb)
			}

			if cn.Ds >= 0 {
				dn := &m.Nodes[cn.Ds]
				for j := 0; j < numg; j++ {
					dn.AddQsin(j, cn.Qsinm[j]-(retbr[j]+retsed[j])*cn.VArea/dtmax)
				}
			}
		}

		dtg -= dtmax
		if dtg <= 1e-6 {
			break
		}
	}
}
