package decimater

// WedgeMerge pairs a uv wedge on the collapsing side (VictimUV, owned by the
// vertex that disappears) with the uv wedge it merges into on the surviving
// side (SurvivorUV). Both quadrics end up accumulated under SurvivorUV.
type WedgeMerge struct {
	SurvivorUV int32
	VictimUV   int32
}

// Bundle is the half-edge bundle of component C4: for undirected edge e
// with endpoints (P0, P1) and incident faces (FaceL, FaceR), it describes
// every wedge that changes identity when P0 collapses into P1.
type Bundle struct {
	Edge, P0, P1   int32
	FaceL, FaceR   int32
	Merges         []WedgeMerge // P0-side wedges that pair with an existing P1-side wedge
	Transfers      []int32      // P0-side uv ids with no P1-side pairing; become new entries at P1
	TouchesInfinity bool
}

// ringFaces returns every face incident to vertex v, starting at startFace
// and walking in the single rotational direction that moves away from
// excludeEdge first, until the walk loops back to startFace. Because the
// mesh is closed off at every boundary by the infinity vertex (spec.md §3),
// this always terminates by returning to startFace rather than by falling
// off a boundary.
func ringFaces(m *Mesh, v, startFace, excludeEdge int32) []int32 {
	faces := []int32{startFace}
	f := startFace
	prevEdge := excludeEdge
	for {
		k := cornerOf(m.F[f], v)
		c1, c2 := int32((k+1)%3), int32((k+2)%3)
		e1, e2 := m.cornerOfEdge(f, int(c1)), m.cornerOfEdge(f, int(c2))
		var nextEdge int32
		if e1 == prevEdge {
			nextEdge = e2
		} else {
			nextEdge = e1
		}
		nf := otherFace(m, nextEdge, f)
		prevEdge = nextEdge
		if nf == -1 || nf == startFace {
			return faces
		}
		f = nf
		faces = append(faces, f)
	}
}

func otherFace(m *Mesh, e, f int32) int32 {
	if m.EF[e][0] == f {
		return m.EF[e][1]
	}
	return m.EF[e][0]
}

// uvRun is a maximal contiguous run of faces (in ring order) sharing the
// same uv id at the circulated vertex.
type uvRun struct {
	uv    int32
	faces []int32
}

func uvRuns(m *Mesh, v int32, ring []int32) []uvRun {
	var runs []uvRun
	for _, f := range ring {
		k := cornerOf(m.F[f], v)
		uv := m.FT[f][k]
		if len(runs) > 0 && runs[len(runs)-1].uv == uv {
			runs[len(runs)-1].faces = append(runs[len(runs)-1].faces, f)
		} else {
			runs = append(runs, uvRun{uv: uv, faces: []int32{f}})
		}
	}
	return runs
}

func runContaining(runs []uvRun, f int32) int {
	for i, r := range runs {
		for _, rf := range r.faces {
			if rf == f {
				return i
			}
		}
	}
	return -1
}

// BuildBundle implements component C4 for undirected edge e, treating
// E[e]=(P0,P1) as the canonical direction for bookkeeping (the cost and
// legality of the collapse are symmetric in P0/P1 — spec.md §4.5's combined
// one-ring orientation check and quadric sum don't distinguish a direction).
// The collapse executor (C7) independently chooses which endpoint actually
// survives per spec.md §4.7 step 2, and re-derives the bundle in that
// direction via buildBundleDirected when the survivor is P0 rather than P1.
func BuildBundle(m *Mesh, e int32, infVertex int32) Bundle {
	return buildBundleDirected(m, e, m.E[e][0], m.E[e][1], infVertex)
}

// buildBundleDirected is BuildBundle generalized to an explicit
// (victim, survivor) pair rather than reading the direction off m.E[e];
// both vertices are still guaranteed incident to e, so either of e's two
// incident faces remains a valid ring-walk starting point for either
// vertex.
func buildBundleDirected(m *Mesh, e int32, p0, p1 int32, infVertex int32) Bundle {
	fL, fR := m.EF[e][0], m.EF[e][1]

	b := Bundle{Edge: e, P0: p0, P1: p1, FaceL: fL, FaceR: fR}
	if p0 == infVertex || p1 == infVertex {
		b.TouchesInfinity = true
		return b
	}

	ringP0 := ringFaces(m, p0, fL, e)
	ringP1 := ringFaces(m, p1, fR, e)
	runsP0 := uvRuns(m, p0, ringP0)
	runsP1 := uvRuns(m, p1, ringP1)

	pairedP0 := make(map[int]bool)

	pairAt := func(face int32) {
		i0 := runContaining(runsP0, face)
		i1 := runContaining(runsP1, face)
		if i0 < 0 || i1 < 0 || pairedP0[i0] {
			return
		}
		pairedP0[i0] = true
		b.Merges = append(b.Merges, WedgeMerge{
			SurvivorUV: runsP1[i1].uv,
			VictimUV:   runsP0[i0].uv,
		})
	}
	pairAt(fL)
	pairAt(fR)

	for i, r := range runsP0 {
		if !pairedP0[i] {
			b.Transfers = append(b.Transfers, r.uv)
		}
	}

	return b
}
