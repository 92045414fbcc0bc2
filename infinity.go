package decimater

import "math"

// connectBoundaryToInfinity appends one infinity vertex and, for every
// boundary edge of the input, one virtual face that closes it (§6 primitive
// `connect_boundary_to_infinity`, §3 "Infinity sentinel vertex"). It also
// extends TC/FT with a matching virtual uv vertex/face so every original
// boundary edge becomes interior to the collapse machinery.
//
// Must be called with edge-flap tables already built from the
// pre-augmentation F.
func connectBoundaryToInfinity(m *Mesh) (infVertex, infUV int32, added bool) {
	inf := math.Inf(1)

	var boundaryEdges []int32
	for e := range m.E {
		if m.EF[e][1] == -1 {
			boundaryEdges = append(boundaryEdges, int32(e))
		}
	}
	if len(boundaryEdges) == 0 {
		return -1, -1, false
	}

	infVertex = int32(len(m.V))
	m.V = append(m.V, [3]float64{inf, inf, inf})
	infUV = int32(len(m.TC))
	m.TC = append(m.TC, [2]float64{inf, inf})

	for _, e := range boundaryEdges {
		f := m.EF[e][0]
		k := int(m.EI[e][0])
		vA, vB := m.F[f][(k+1)%3], m.F[f][(k+2)%3]
		tA, tB := m.FT[f][(k+1)%3], m.FT[f][(k+2)%3]

		// Reversed order (vB,vA) keeps the virtual face's orientation
		// consistent with the rest of the mesh; infinity sits at corner 2
		// as the spec's contract for connect_boundary_to_infinity requires.
		m.F = append(m.F, [3]int32{vB, vA, infVertex})
		m.FT = append(m.FT, [3]int32{tB, tA, infUV})
	}

	m.rebuildEdgeFlaps()
	return infVertex, infUV, true
}
