package decimater

// EdgeClass identifies an undirected edge by one of its two incident
// corners and, when interior, the matching corner on the other side —
// mirroring the `(face, corner_k, opposite_face, opposite_corner_k)`
// contract of the §6 `seam_edges` primitive.
type EdgeClass struct {
	Face, Corner, OppFace, OppCorner int32
}

// positionPair returns the two position-vertex ids of the edge identified by
// (face, corner): the edge opposite that corner.
func (m *Mesh) positionPair(face, corner int32) (int32, int32) {
	f := m.F[face]
	k := int(corner)
	return f[(k+1)%3], f[(k+2)%3]
}

// uvOrientation returns the signed area (x2) of face f's uv triangle; its
// sign is the uv winding direction.
func uvOrientation(m *Mesh, f int32) float64 {
	t0, t1, t2 := m.TC[m.FT[f][0]], m.TC[m.FT[f][1]], m.TC[m.FT[f][2]]
	return (t1[0]-t0[0])*(t2[1]-t0[1]) - (t1[1]-t0[1])*(t2[0]-t0[0])
}

// classifySeams implements the §6 `seam_edges` primitive: for every
// undirected position edge, classify it as a boundary (one incident face),
// a seam (uv discontinuous across the edge), and/or a fold-over (the two
// incident uv triangles wind oppositely).
func classifySeams(m *Mesh) (seams, boundaries, foldovers []EdgeClass) {
	for e := range m.E {
		f0, f1 := m.EF[e][0], m.EF[e][1]
		k0 := m.EI[e][0]
		if f1 == -1 {
			boundaries = append(boundaries, EdgeClass{f0, k0, -1, -1})
			continue
		}
		k1 := m.EI[e][1]

		a0, b0 := m.FT[f0][(k0+1)%3], m.FT[f0][(k0+2)%3]
		a1, b1 := m.FT[f1][(k1+1)%3], m.FT[f1][(k1+2)%3]
		// Adjacent faces traverse a shared edge in opposite directions when
		// consistently oriented, so continuity requires a0==b1 && b0==a1.
		if !(a0 == b1 && b0 == a1) {
			seams = append(seams, EdgeClass{f0, k0, f1, k1})
		}

		if uvOrientation(m, f0)*uvOrientation(m, f1) < 0 {
			foldovers = append(foldovers, EdgeClass{f0, k0, f1, k1})
		}
	}
	return
}
