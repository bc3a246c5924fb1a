package erosion

import (
	"fmt"

	"github.com/SiccarPoint/child/mesh"
)

// DetachErode advances coupled detachment and transport of all grain
// sizes over dtg [yr], stamping layers with the model time. Material
// leaves the bed only as far as the flow can carry it; capacity is a
// depth-weighted blend over every layer inside the channel, so a thin
// mantle exposes the rock below to scour. Replaces StreamErode and
// StreamErodeMulti.
func (e *Erosion) DetachErode(dtg, time float64) {
	if e.net.RainRate()-e.net.Infilt() <= 0. {
		return // no runoff, no stream work
	}
	const frac = 0.3
	m := e.m
	numg := m.Numg
	timegb := time
	inlet := e.net.InletNode()
	insedloadtotal := e.net.InSedLoad()
	insed := e.net.InSedLoads()

	erolist := make([]float64, numg)
	sink := mesh.Node{Qsm: make([]float64, numg), Qsinm: make([]float64, numg)}

	e.net.SortNodesByNetOrder(m)
	e.net.FindChanGeom(m)
	e.net.FindHydrGeom(m)

	for {
		// Zero the flux state; the inlet keeps its feed.
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			cn.Qs = 0.
			if i != inlet {
				cn.Qsin = 0.
				for j := 0; j < numg; j++ {
					cn.SetQsin(j, 0.)
					cn.SetQs(j, 0.)
				}
			} else {
				cn.Qsin = insedloadtotal
				for j := 0; j < numg; j++ {
					cn.SetQs(j, 0.)
					cn.SetQsin(j, insed[j])
				}
			}
		}

		// Rate pass: capacity blended over the layers the channel
		// reaches, detachment based on the deepest of them.
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			if cn.ChanDepth >= 1000. {
				panic(fmt.Sprintf(" Erosion.DetachErode: runaway channel depth at node %d", i))
			}
			depck := 0.
			lyr := 0
			qs := 0.
			for cn.ChanDepth-depck > 0.0001 {
				if depck+cn.Lays[lyr].Depth() <= cn.ChanDepth {
					qs += e.sedTrans.TransCapacityLay(m, i, lyr, cn.Lays[lyr].Depth()/cn.ChanDepth)
				} else {
					qs += e.sedTrans.TransCapacityLay(m, i, lyr, 1.-depck/cn.ChanDepth)
				}
				depck += cn.Lays[lyr].Depth()
				lyr++
			}
			var drdt float64
			if depck > cn.ChanDepth {
				drdt = -e.bedErode.DetachCapacityLay(m, i, lyr-1)
			} else {
				drdt = -e.bedErode.DetachCapacityLay(m, i, lyr)
			}
			cn.DrDt = drdt
			cn.DzDt = drdt
			// positive excess capacity erodes, negative deposits
			excap := (qs - cn.Qsin) / cn.VArea
			if -drdt > excap {
				cn.DzDt = -excap
			}
			if cn.Ds >= 0 {
				m.Nodes[cn.Ds].Qsin += cn.Qsin - cn.DzDt*cn.VArea
			}
		}

		// Step size from converging pairs; also reset the per-size
		// influx here, which rebuilds the totals as it goes.
		dtmax := dtg / frac
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			if i != inlet {
				for j := 0; j < numg; j++ {
					cn.SetQsin(j, 0.)
				}
			} else {
				for j := 0; j < numg; j++ {
					cn.SetQsin(j, insed[j])
				}
			}
			if cn.Ds < 0 {
				continue
			}
			dn := &m.Nodes[cn.Ds]
			if ratediff := dn.DzDt - cn.DzDt; ratediff > 0. && m.Slope(i) > 1e-7 {
				dt := (cn.Z - dn.Z) / ratediff
				if dt < dtmax {
					dtmax = dt
				}
				if dt < 0.0001 {
					dtmax = 0.0001
				}
			}
		}
		dtmax *= frac
		timegb += dtmax

		// Apply pass: work each node's balance through its layers and
		// hand the realized flux downstream.
		for _, i := range m.Ord {
			cn := &m.Nodes[i]
			dn := &sink // flux through an unlinked (pit) node leaves the domain
			if cn.Ds >= 0 {
				dn = &m.Nodes[cn.Ds]
			}
			excap := (cn.Qs - cn.Qsin) / cn.VArea
			dz := 0.
			flag := 0
			if -cn.DrDt < excap {
				dz = cn.DrDt * dtmax // detachment limited
			} else {
				dz = -excap * dtmax // transport limited
				flag = 1
			}
			for j := 0; j < numg; j++ {
				dn.AddQsin(j, cn.Qsinm[j])
			}

			if dz < 0. {
				if flag == 0 {
					// Detachment limited: texture follows the bed,
					// each size still capped by spare capacity.
					lyr := 0
					depck := 0.
					for dz < -0.000000001 && depck < cn.ChanDepth && lyr < len(cn.Lays) {
						depck += cn.Lays[lyr].Depth()
						if ld := cn.Lays[lyr].Depth(); -dz <= ld {
							// this layer can supply the whole depth
							for j := 0; j < numg; j++ {
								erolist[j] = dz * cn.Lays[lyr].Dgrade[j] / ld
								if bound := (cn.Qsinm[j] - cn.Qsm[j]) * dtmax / cn.VArea; erolist[j] < bound {
									erolist[j] = bound
									cn.SetQsin(j, 0.)
									cn.SetQs(j, 0.)
								}
							}
							ret := m.EroDepL(i, lyr, erolist, timegb)
							for j := 0; j < numg; j++ {
								dn.AddQsin(j, -ret[j]*cn.VArea/dtmax)
							}
							dz = 0.
						} else {
							// take the whole layer and move deeper
							flag = 0
							for j := 0; j < numg; j++ {
								erolist[j] = -cn.Lays[lyr].Dgrade[j]
								if bound := (cn.Qsinm[j] - cn.Qsm[j]) * dtmax / cn.VArea; erolist[j] < bound {
									// capacity filled by this layer; the
									// layer survives, so step past it
									erolist[j] = bound
									cn.SetQsin(j, 0.)
									cn.SetQs(j, 0.)
									flag = 1
								}
								dz -= erolist[j]
							}
							ret := m.EroDepL(i, lyr, erolist, timegb)
							for j := 0; j < numg; j++ {
								dn.AddQsin(j, -ret[j]*cn.VArea/dtmax)
							}
							if flag == 1 {
								lyr++
							}
						}
					}
				} else {
					// Transport limited: texture follows capacity,
					// drawn from as many layers as the channel sees.
					for j := 0; j < numg; j++ {
						erolist[j] = (cn.Qsinm[j] - cn.Qsm[j]) * dtmax / cn.VArea
					}
					lyr := 0
					depck := 0.
					for depck < cn.ChanDepth {
						depck += cn.Lays[lyr].Depth()
						nlay := len(cn.Lays)
						ret := m.EroDepL(i, lyr, erolist, timegb)
						sum := 0.
						for j := 0; j < numg; j++ {
							dn.AddQsin(j, -ret[j]*cn.VArea/dtmax)
							erolist[j] -= ret[j]
							sum += erolist[j]
						}
						if sum > -0.0000001 {
							depck = cn.ChanDepth
						}
						if nlay == len(cn.Lays) {
							lyr++
						}
					}
				}
			} else if dz > 0. {
				// deposition takes the texture of the surplus load
				for j := 0; j < numg; j++ {
					erolist[j] = (cn.Qsinm[j] - cn.Qsm[j]) * dtmax / cn.VArea
				}
				ret := m.EroDepL(i, 0, erolist, timegb)
				for j := 0; j < numg; j++ {
					dn.AddQsin(j, -ret[j]*cn.VArea/dtmax)
				}
			}
		}

		dtg -= dtmax
		if dtg <= 1e-6 {
			break
		}
	}
}
