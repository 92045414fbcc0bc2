package decimater

import "math"

// SymMat6 is the 6x6 symmetric quadric `[A b; bT c]` of spec.md §3, keyed
// over the homogeneous 5D point (x,y,z,u,v,1). Stored as a full array rather
// than packed upper-triangle: at this fixed size the extra 15 floats are
// immaterial and a full array keeps Add/addOuterProduct trivial to read.
type SymMat6 struct {
	M [6][6]float64
}

// Add accumulates other into m in place (quadrics sum across incident
// corners, spec.md §4.3).
func (m *SymMat6) Add(other *SymMat6) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			m.M[i][j] += other.M[i][j]
		}
	}
}

// Clone returns an independent copy.
func (m *SymMat6) Clone() *SymMat6 {
	c := &SymMat6{}
	c.M = m.M
	return c
}

// addOuterProduct adds weight * (g . g^T) to m, where g is a 6-vector
// (gx,gy,gz,gu,gv,g1). This is the "outer product of a 6-vector
// representing a combined 3D plane and UV plane equation" of spec.md §4.3.
func (m *SymMat6) addOuterProduct(g [6]float64, weight float64) {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			m.M[i][j] += weight * g[i] * g[j]
		}
	}
}

// eval returns x^T A x + 2 b^T x + c for x=(X,Y,Z,U,V), i.e. the quadric
// error of placing a single wedge at x.
func (m *SymMat6) eval(x [5]float64) float64 {
	h := [6]float64{x[0], x[1], x[2], x[3], x[4], 1}
	sum := 0.0
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			sum += h[i] * m.M[i][j] * h[j]
		}
	}
	return sum
}

// Solve is the 1-wedge fast path: when a collapse bundle carries exactly one
// wedge, oracle.go's general (3+2k)x(3+2k) block system (assembled via
// lvlath's matrix/ops for arbitrary k) degenerates to exactly m's own 5x5
// inner block, so it can be solved directly off m's storage with no dynamic
// allocation. This mirrors nat-n-shapeset/edge.go:calculateError's optimized
// special case of solving the single-block system directly rather than
// going through a general solver, generalized here from that function's 4x4
// (position-only) block to this module's 5x5 (position+uv) block. Returns
// ok=false when the block is ill-conditioned, using the same detTolerance
// gate oracle.go's general path uses.
func (m *SymMat6) Solve() (x [5]float64, cost float64, ok bool) {
	var A [5][5]float64
	var g [5]float64
	for i := 0; i < 5; i++ {
		g[i] = m.M[i][5]
		for j := 0; j < 5; j++ {
			A[i][j] = m.M[i][j]
		}
	}

	x, ok = solve5(A, g)
	if !ok {
		return x, 0, false
	}

	cost = m.M[5][5]
	for i := 0; i < 5; i++ {
		cost += 2 * g[i] * x[i]
		for j := 0; j < 5; j++ {
			cost += x[i] * A[i][j] * x[j]
		}
	}
	return x, cost, true
}

// solve5 solves A x = -b for the fixed 5x5 case via Gaussian elimination
// with partial pivoting, the direct analogue of the general oracle.go
// solveLinearSystem but without lvlath's dynamic matrix allocation. Returns
// ok=false if any pivot (and so the determinant) falls below detTolerance.
func solve5(A [5][5]float64, b [5]float64) (x [5]float64, ok bool) {
	var m [5][6]float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			m[i][j] = A[i][j]
		}
		m[i][5] = -b[i]
	}

	for col := 0; col < 5; col++ {
		pivot := col
		best := math.Abs(m[col][col])
		for r := col + 1; r < 5; r++ {
			if v := math.Abs(m[r][col]); v > best {
				best, pivot = v, r
			}
		}
		if best < detTolerance {
			return x, false
		}
		if pivot != col {
			m[col], m[pivot] = m[pivot], m[col]
		}
		for r := col + 1; r < 5; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c < 6; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	for row := 4; row >= 0; row-- {
		sum := m[row][5]
		for c := row + 1; c < 5; c++ {
			sum -= m[row][c] * x[c]
		}
		x[row] = sum / m[row][row]
	}
	return x, true
}

// QuadricMap is the sparse two-level wedge-quadric map of spec.md §3/§4.3:
// position id -> uv id -> accumulated quadric.
type QuadricMap map[int32]map[int32]*SymMat6

func NewQuadricMap() QuadricMap {
	return make(QuadricMap)
}

func (qm QuadricMap) get(p, t int32) *SymMat6 {
	byUV, ok := qm[p]
	if !ok {
		return nil
	}
	return byUV[t]
}

// addTo accumulates q into the (p,t) entry, creating it if absent.
func (qm QuadricMap) addTo(p, t int32, q *SymMat6) {
	byUV, ok := qm[p]
	if !ok {
		byUV = make(map[int32]*SymMat6)
		qm[p] = byUV
	}
	existing, ok := byUV[t]
	if !ok {
		byUV[t] = q.Clone()
		return
	}
	existing.Add(q)
}

// delete drops a wedge entirely, and the position entry too if it was the
// last wedge there.
func (qm QuadricMap) delete(p, t int32) {
	byUV, ok := qm[p]
	if !ok {
		return
	}
	delete(byUV, t)
	if len(byUV) == 0 {
		delete(qm, p)
	}
}

// deleteVertex drops every wedge at p (used once the victim of a collapse
// has had all of its wedges transferred to the survivor).
func (qm QuadricMap) deleteVertex(p int32) {
	delete(qm, p)
}

// faceQuadric builds the per-corner fundamental quadric of spec.md §4.3 for
// one corner of face f: the generalized (Garland-Heckbert) 5D quadric
// measuring squared distance, in the combined (x,y,z,u,v) space, from the
// affine plane spanned by the triangle's three (scaled) 5D corner points,
// scaled by the triangle's 3D area. All three corners of a face share the
// same quadric (it is a property of the plane, not the corner), so this is
// computed once per face and reused for all three of its corners.
func faceQuadric(p0, p1, p2 [3]float64, t0, t1, t2 [2]float64) *SymMat6 {
	P0 := [5]float64{p0[0], p0[1], p0[2], t0[0], t0[1]}
	P1 := [5]float64{p1[0], p1[1], p1[2], t1[0], t1[1]}
	P2 := [5]float64{p2[0], p2[1], p2[2], t2[0], t2[1]}

	area := triangleArea3D(p0, p1, p2)
	if area <= 0 {
		return &SymMat6{}
	}

	e1 := sub5(P1, P0)
	e2 := sub5(P2, P0)

	// Gram-Schmidt: orthonormal basis {a,b} of the 2-plane spanned by e1,e2.
	a := normalize5(e1)
	e2proj := sub5(e2, scale5(a, dot5(a, e2)))
	b := normalize5(e2proj)

	// A = I - a a^T - b b^T (5x5); the quadric measures squared
	// perpendicular distance from the plane through P0 spanned by a,b.
	var A [5][5]float64
	for i := 0; i < 5; i++ {
		A[i][i] = 1
	}
	subOuter5(&A, a)
	subOuter5(&A, b)

	// Linear term: the quadratic form is (v-P0)^T A (v-P0) since A projects
	// out the plane directions and P0 lies on the plane by construction.
	// Expand: v^T A v - 2 v^T A P0 + P0^T A P0.
	AP0 := mulVec5(A, P0)
	c := dot5(P0, AP0)

	q := &SymMat6{}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			q.M[i][j] = A[i][j]
		}
		q.M[i][5] = -AP0[i]
		q.M[5][i] = -AP0[i]
	}
	q.M[5][5] = c

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			q.M[i][j] *= area
		}
	}
	return q
}

func triangleArea3D(p0, p1, p2 [3]float64) float64 {
	e1 := [3]float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	e2 := [3]float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	cx := e1[1]*e2[2] - e1[2]*e2[1]
	cy := e1[2]*e2[0] - e1[0]*e2[2]
	cz := e1[0]*e2[1] - e1[1]*e2[0]
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}

func sub5(a, b [5]float64) [5]float64 {
	var r [5]float64
	for i := range r {
		r[i] = a[i] - b[i]
	}
	return r
}

func scale5(a [5]float64, s float64) [5]float64 {
	var r [5]float64
	for i := range r {
		r[i] = a[i] * s
	}
	return r
}

func dot5(a, b [5]float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize5(a [5]float64) [5]float64 {
	n := math.Sqrt(dot5(a, a))
	if n < 1e-15 {
		return [5]float64{}
	}
	return scale5(a, 1/n)
}

func subOuter5(A *[5][5]float64, a [5]float64) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			A[i][j] -= a[i] * a[j]
		}
	}
}

func mulVec5(A [5][5]float64, v [5]float64) [5]float64 {
	var r [5]float64
	for i := 0; i < 5; i++ {
		sum := 0.0
		for j := 0; j < 5; j++ {
			sum += A[i][j] * v[j]
		}
		r[i] = sum
	}
	return r
}
