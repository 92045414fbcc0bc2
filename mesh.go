package decimater

// NullFace marks a dead row in F/FT awaiting compaction (spec "Collapsed-face
// sentinel"). A live face never has any column equal to NullFace.
const NullFace = int32(-1)

// Mesh is the arena-backed topology store (component C1). V/TC/F/FT are the
// working copies mutated in place by the collapse executor; E/EMAP/EF/EI are
// the edge-flap tables, rebuilt once at init and then patched incrementally.
//
// EMAP uses row-major indexing EMAP[f*3+k] (the edge opposite corner k of
// face f). The source this spec was distilled from uses Eigen's
// column-major k*|F|+f; the two are equivalent contracts (P5 holds either
// way) and row-major is the natural layout for a Go slice-of-slices.
type Mesh struct {
	V  [][3]float64
	TC [][2]float64
	F  [][3]int32
	FT [][3]int32

	E    [][2]int32 // undirected edge -> (position id, position id)
	EMAP []int32    // f*3+k -> edge index
	EF   [][2]int32 // edge -> (face, face), -1 sentinel for boundary/dead side
	EI   [][2]int32 // edge -> (opposite-corner-in-EF[0], opposite-corner-in-EF[1])

	// EDead marks an edge retired by a collapse (spec.md §4.7 step 5); the
	// edge-flap arena only ever grows, so dead slots are tombstoned rather
	// than compacted until the final compact() pass.
	EDead []bool
}

// cornerOf returns the corner index k in face f such that F[f][k] == v, or -1
// if v is not a corner of f.
func cornerOf(face [3]int32, v int32) int {
	for k := 0; k < 3; k++ {
		if face[k] == v {
			return k
		}
	}
	return -1
}

// cornerOfEdge returns the edge opposite corner (f,k).
func (m *Mesh) cornerOfEdge(f int32, k int) int32 {
	return m.EMAP[int(f)*3+k]
}

// facesAroundEdge returns the two incident face ids of undirected edge e,
// with NullFace/-1 standing in for a missing boundary side.
func (m *Mesh) facesAroundEdge(e int32) (f0, f1 int32) {
	return m.EF[e][0], m.EF[e][1]
}

// oppositeCornerInFace returns the corner of face f that is opposite edge e,
// given that f is one of e's two incident faces.
func (m *Mesh) oppositeCornerInFace(e, f int32) int32 {
	if m.EF[e][0] == f {
		return m.EI[e][0]
	}
	return m.EI[e][1]
}

// edgeFlaps is a pure function of F computing the canonical edge-flap
// tables (§6 primitive `edge_flaps`). Rebuilt only at init; C7 maintains the
// tables incrementally thereafter per spec.md §4.1.
func edgeFlaps(F [][3]int32) (E [][2]int32, EMAP []int32, EF [][2]int32, EI [][2]int32) {
	type key struct{ a, b int32 }
	index := make(map[key]int32, len(F)*3/2)
	EMAP = make([]int32, len(F)*3)

	for f := range F {
		for k := 0; k < 3; k++ {
			v1, v2 := F[f][(k+1)%3], F[f][(k+2)%3]
			a, b := v1, v2
			if a > b {
				a, b = b, a
			}
			kk := key{a, b}
			e, ok := index[kk]
			if !ok {
				e = int32(len(E))
				index[kk] = e
				E = append(E, [2]int32{a, b})
				EF = append(EF, [2]int32{-1, -1})
				EI = append(EI, [2]int32{-1, -1})
			}
			EMAP[f*3+k] = e
			if EF[e][0] == -1 {
				EF[e][0] = int32(f)
				EI[e][0] = int32(k)
			} else {
				EF[e][1] = int32(f)
				EI[e][1] = int32(k)
			}
		}
	}
	return
}

// rebuildEdgeFlaps recomputes E/EMAP/EF/EI from the current F. Used only at
// init; C7 patches the tables in place afterwards rather than calling this.
func (m *Mesh) rebuildEdgeFlaps() {
	m.E, m.EMAP, m.EF, m.EI = edgeFlaps(m.F)
	m.EDead = make([]bool, len(m.E))
}
