package decimater

import "math"

// linkCondition implements the standard manifold-preserving collapse test:
// collapsing (p0,p1) is safe from creating non-manifold geometry iff the
// only vertices adjacent to both p0 and p1 are the two opposite corners of
// the edge's incident faces (spec.md §4.5 rule 1, "must not create a
// duplicate face, a non-manifold edge").
func linkCondition(m *Mesh, p0, p1, fL, fR int32) bool {
	wL := thirdCorner(m.F[fL], p0, p1)
	wR := thirdCorner(m.F[fR], p0, p1)

	neighborsOf := func(v, other int32) map[int32]bool {
		set := make(map[int32]bool)
		for _, e := range edgesTouching(m, v) {
			a, b := m.E[e][0], m.E[e][1]
			var n int32
			if a == v {
				n = b
			} else {
				n = a
			}
			if n != other {
				set[n] = true
			}
		}
		return set
	}

	n0 := neighborsOf(p0, p1)
	n1 := neighborsOf(p1, p0)
	shared := 0
	for v := range n0 {
		if n1[v] {
			shared++
			if v != wL && v != wR {
				return false
			}
		}
	}
	return shared <= 2
}

func thirdCorner(face [3]int32, a, b int32) int32 {
	for _, v := range face {
		if v != a && v != b {
			return v
		}
	}
	return -1
}

// edgesTouching is a brute-force scan over undirected edges incident to v;
// acceptable here since it is only called by the legality check, itself
// already O(ring size) per candidate.
func edgesTouching(m *Mesh, v int32) []int32 {
	var out []int32
	for e := range m.E {
		if m.E[e][0] == v || m.E[e][1] == v {
			out = append(out, int32(e))
		}
	}
	return out
}

// noDuplicateFace checks rule 1's "must not create a duplicate face": after
// p0 and p1 merge to one identity, no two retained faces in their combined
// one-ring (excluding fL, fR, which die in the collapse) may reference the
// same three vertices. This is the case that rejects every edge of a
// tetrahedron: the two faces opposite the collapsing edge end up sharing
// all three vertices once the edge's endpoints become one vertex, even
// though the plain link condition is satisfied.
func noDuplicateFace(m *Mesh, p0, p1, fL, fR int32) bool {
	merged := func(v int32) int32 {
		if v == p0 || v == p1 {
			return p1
		}
		return v
	}
	seen := make(map[[3]int32]bool)
	check := func(f int32) bool {
		if f == fL || f == fR || f == NullFace {
			return true
		}
		face := m.F[f]
		key := sortedTriple(merged(face[0]), merged(face[1]), merged(face[2]))
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	}
	for _, f := range ringFacesAll(m, p0, fL, -1) {
		if !check(f) {
			return false
		}
	}
	for _, f := range ringFacesAll(m, p1, fR, -1) {
		if !check(f) {
			return false
		}
	}
	return true
}

func sortedTriple(a, b, c int32) [3]int32 {
	arr := [3]int32{a, b, c}
	if arr[0] > arr[1] {
		arr[0], arr[1] = arr[1], arr[0]
	}
	if arr[1] > arr[2] {
		arr[1], arr[2] = arr[2], arr[1]
	}
	if arr[0] > arr[1] {
		arr[0], arr[1] = arr[1], arr[0]
	}
	return arr
}

// orientationPreserved checks rule 1's second half: no retained face in the
// combined one-ring of p0/p1 (excluding the two faces that die in the
// collapse) flips its signed-area normal when p0 and p1 both move to pos.
// Virtual faces touching the infinity vertex have no finite normal and are
// skipped.
func orientationPreserved(m *Mesh, p0, p1, fL, fR int32, pos [3]float64) bool {
	check := func(f int32) bool {
		if f == fL || f == fR || f == NullFace {
			return true
		}
		face := m.F[f]
		for _, v := range face {
			if math.IsInf(m.V[v][0], 0) {
				return true
			}
		}
		before := faceNormalSign(m.V[face[0]], m.V[face[1]], m.V[face[2]])

		at := func(v int32) [3]float64 {
			if v == p0 || v == p1 {
				return pos
			}
			return m.V[v]
		}
		after := faceNormalSign(at(face[0]), at(face[1]), at(face[2]))
		return dot3(before, after) >= 0
	}

	for _, f := range ringFacesAll(m, p0, fL, -1) {
		if !check(f) {
			return false
		}
	}
	for _, f := range ringFacesAll(m, p1, fR, -1) {
		if !check(f) {
			return false
		}
	}
	return true
}

// ringFacesAll returns every face incident to v without the "stop at
// excludeEdge" early exit that ringFaces uses for bundle building: here we
// want the whole ring regardless, so excludeEdge only seeds the starting
// direction and -1 disables the special-case comparison (any real edge id
// will do since the walk always terminates back at startFace).
func ringFacesAll(m *Mesh, v, startFace, excludeEdge int32) []int32 {
	if excludeEdge < 0 {
		k := cornerOf(m.F[startFace], v)
		excludeEdge = m.cornerOfEdge(startFace, (k+1)%3)
	}
	return ringFaces(m, v, startFace, excludeEdge)
}

func faceNormalSign(a, b, c [3]float64) [3]float64 {
	e1 := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	return [3]float64{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// seamInterior reports whether the edge (p0,p1) is itself a seam edge whose
// two endpoints each have seam-degree exactly 2 — "interior to a seam
// polyline, not a junction" (spec.md §4.5 rule 2.1b).
func seamInterior(seams *SeamSet, p0, p1 int32, edgeIsSeam bool) bool {
	return edgeIsSeam && seams.DegreeIn(p0) == 2 && seams.DegreeIn(p1) == 2
}

// seamLegal implements spec.md §4.5 rule 2 (seam strictness) and rule 3
// (boundary preservation). Strictness 2's extra wedge-count requirement is
// checked by the caller (oracle.go's Evaluate) once the bundle is known.
func seamLegal(seams *SeamSet, opts DecimateOptions, p0, p1 int32, edgeIsSeam bool) bool {
	if opts.SeamAwareDegree == NoUVShapePreserving {
		// Rule 3 still applies under strictness 0: a boundary-marked
		// endpoint disallows the collapse unless it is a seam-interior edge.
		if opts.PreserveBoundaries && (seams.OnSeam(p0) || seams.OnSeam(p1)) {
			return seamInterior(seams, p0, p1, edgeIsSeam)
		}
		return true
	}

	if seams.OnSeam(p0) || seams.OnSeam(p1) {
		if !seamInterior(seams, p0, p1, edgeIsSeam) {
			return false
		}
	}
	return true
}
