package decimater

import (
	"math"

	"github.com/katalvlaran/lvlath/matrix"
	"github.com/katalvlaran/lvlath/matrix/ops"
)

// SeamAwareDegree is the strictness tag of spec.md §4.5.
type SeamAwareDegree int

const (
	NoUVShapePreserving SeamAwareDegree = 0
	UVShapePreserving   SeamAwareDegree = 1
	Seamless            SeamAwareDegree = 2
)

// Placement is the oracle's output for a legal candidate: the merged 3D
// position and, for every wedge in the bundle, its merged uv coordinate.
type Placement struct {
	Pos [3]float64
	UV  map[int32][2]float64
}

// Evaluate implements component C5 for directed edge e with bundle b:
// legality rules of spec.md §4.5 first (any failure returns +Inf cost), then
// the quadric-minimizing placement with midpoint/endpoint fallback. Called
// once per undirected edge at init, in the E[e] direction BuildBundle picks,
// and once per live edge in the survivor's one-ring after each collapse
// (collapse.go, step 9); the reverse direction of an edge is not evaluated
// separately.
func Evaluate(m *Mesh, seams *SeamSet, qm QuadricMap, opts DecimateOptions, infVertex int32, e int32, b Bundle) (cost float64, placement Placement) {
	inf := Placement{}
	if b.TouchesInfinity {
		// Rule 4: edges touching the infinity vertex are always disallowed.
		return math.Inf(1), inf
	}

	p0, p1 := b.P0, b.P1
	fL, fR := b.FaceL, b.FaceR

	edgeIsSeam := seams.Contains(p0, p1)
	if !seamLegal(seams, opts, p0, p1, edgeIsSeam) {
		return math.Inf(1), inf
	}
	// Rule 3 (boundary preservation) does not need a separate fL/fR ==
	// NullFace check here: Decimate always runs connectBoundaryToInfinity
	// before the queue is seeded (decimate.go), so every live edge's EF
	// slots are real faces by the time Evaluate runs — a genuine boundary
	// edge now pairs with a virtual infinity face. b.TouchesInfinity above
	// only rejects edges with the infinity vertex as an endpoint; a boundary
	// edge itself stays a candidate, and orientationPreserved skips the
	// virtual faces in its one-ring.
	// What used to be a boundary check is instead carried entirely by
	// seamLegal: BuildSeamSet puts every original boundary edge into the
	// seam set unconditionally, so opts.PreserveBoundaries only needs to
	// gate seamLegal's OnSeam restriction at strictness 0 (where seam
	// restriction is otherwise off); at strictness >= 1 a boundary vertex
	// is already restricted the same way any other seam vertex is.
	if opts.SeamAwareDegree == Seamless {
		minWedges := countWedges(qm, p0)
		if w := countWedges(qm, p1); w < minWedges {
			minWedges = w
		}
		mergedWedges := len(b.Merges) + len(b.Transfers)
		if mergedWedges > minWedges {
			return math.Inf(1), inf
		}
		// "seam edges map to seam edges under the merge" holds automatically
		// here: the collapsing edge itself disappears entirely rather than
		// being replaced by some other edge, so there is no new edge whose
		// seam membership could be wrong — seamLegal's seam-interior gate
		// above is the only constraint strictness 2 needs beyond rule 1.
	}

	terms := bundleTerms(qm, b)

	var pos [3]float64
	var uv map[int32][2]float64
	var c float64
	var ok bool
	if len(terms) == 1 {
		pos, uv, c, ok = solveSingleWedge(terms[0])
	} else {
		pos, uv, c, ok = solvePlacement(terms)
	}
	if !ok {
		pos, uv, c = fallbackPlacement(m, terms, b)
	}

	if !linkCondition(m, p0, p1, fL, fR) {
		return math.Inf(1), inf
	}
	if !noDuplicateFace(m, p0, p1, fL, fR) {
		return math.Inf(1), inf
	}
	if !orientationPreserved(m, p0, p1, fL, fR, pos) {
		return math.Inf(1), inf
	}

	return c, Placement{Pos: pos, UV: uv}
}

func countWedges(qm QuadricMap, p int32) int {
	return len(qm[p])
}

// detTolerance gates the "ill-conditioned" fallback of spec.md §4.5; the
// working positions/uvs are pre-scaled by pos_scale/uv_weight so magnitudes
// are already normalized and a fixed epsilon is meaningful.
const detTolerance = 1e-9

type wedgeTerm struct {
	survivorUV int32
	quadric    *SymMat6
	p0UV       int32 // -1 if pure transfer
	p1UV       int32 // -1 if pure transfer
}

func bundleTerms(qm QuadricMap, b Bundle) []wedgeTerm {
	terms := make([]wedgeTerm, 0, len(b.Merges)+len(b.Transfers))
	for _, mg := range b.Merges {
		q := &SymMat6{}
		if src := qm.get(b.P0, mg.VictimUV); src != nil {
			q.Add(src)
		}
		if dst := qm.get(b.P1, mg.SurvivorUV); dst != nil {
			q.Add(dst)
		}
		terms = append(terms, wedgeTerm{survivorUV: mg.SurvivorUV, quadric: q, p0UV: mg.VictimUV, p1UV: mg.SurvivorUV})
	}
	for _, uv := range b.Transfers {
		q := &SymMat6{}
		if src := qm.get(b.P0, uv); src != nil {
			q.Add(src)
		}
		terms = append(terms, wedgeTerm{survivorUV: uv, quadric: q, p0UV: uv, p1UV: -1})
	}
	return terms
}

// solveSingleWedge is the k=1 fast path: bundleTerms produces exactly one
// wedgeTerm whose quadric already *is* the full (3+2) system (off is always
// 3 when there is only one term), so SymMat6.Solve can be called directly
// instead of assembling a 5x5 matrix.Dense through solvePlacement's general
// path.
func solveSingleWedge(t wedgeTerm) (pos [3]float64, uv map[int32][2]float64, cost float64, ok bool) {
	x, c, solved := t.quadric.Solve()
	if !solved {
		return pos, nil, 0, false
	}
	pos = [3]float64{x[0], x[1], x[2]}
	uv = map[int32][2]float64{t.survivorUV: {x[3], x[4]}}
	return pos, uv, c, true
}

// solvePlacement assembles and solves the block linear system of spec.md
// §4.5: shared (X,Y,Z) across all wedges, independent (U,V) per wedge.
// Returns ok=false when the system is ill-conditioned (determinant near
// zero relative to detTolerance), signalling the caller to fall back.
func solvePlacement(terms []wedgeTerm) (pos [3]float64, uv map[int32][2]float64, cost float64, ok bool) {
	n := 3 + 2*len(terms)
	H := make([][]float64, n)
	for i := range H {
		H[i] = make([]float64, n)
	}
	g := make([]float64, n)
	c := 0.0

	for wi, t := range terms {
		A := t.quadric.M
		off := 3 + 2*wi
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				H[i][j] += A[i][j]
			}
			H[i][off], H[i][off+1] = H[i][off]+A[i][3], H[i][off+1]+A[i][4]
			H[off][i], H[off+1][i] = H[off][i]+A[3][i], H[off+1][i]+A[4][i]
			g[i] += A[i][5]
		}
		H[off][off] += A[3][3]
		H[off][off+1] += A[3][4]
		H[off+1][off] += A[4][3]
		H[off+1][off+1] += A[4][4]
		g[off] += A[3][5]
		g[off+1] += A[4][5]
		c += A[5][5]
	}

	x, solved := solveLinearSystem(H, g)
	if !solved {
		return pos, nil, 0, false
	}

	pos = [3]float64{x[0], x[1], x[2]}
	uv = make(map[int32][2]float64, len(terms))
	for wi, t := range terms {
		off := 3 + 2*wi
		uv[t.survivorUV] = [2]float64{x[off], x[off+1]}
	}

	cost = c
	for i := 0; i < n; i++ {
		cost += 2 * g[i] * x[i]
		for j := 0; j < n; j++ {
			cost += x[i] * H[i][j] * x[j]
		}
	}
	return pos, uv, cost, true
}

// solveLinearSystem solves Hx = -g for x via LU decomposition (the
// katalvlaran/lvlath matrix-ops stack, since the system's size varies with
// the wedge count and cannot be represented by the fixed SymMat6 type).
func solveLinearSystem(H [][]float64, g []float64) (x []float64, ok bool) {
	n := len(g)
	dense, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, false
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			_ = dense.Set(i, j, H[i][j])
		}
	}

	_, U, err := ops.LU(dense)
	if err != nil {
		return nil, false
	}
	det := 1.0
	for i := 0; i < n; i++ {
		v, _ := U.At(i, i)
		det *= v
	}
	if math.Abs(det) < detTolerance {
		return nil, false
	}

	inv, err := ops.Inverse(dense)
	if err != nil {
		return nil, false
	}
	x = make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			v, _ := inv.At(i, j)
			sum -= v * g[j]
		}
		x[i] = sum
	}
	return x, true
}

// fallbackPlacement implements the midpoint/either-endpoint fallback of
// spec.md §4.5 when the linear system is ill-conditioned: it evaluates P0,
// P1 and the midpoint and returns the cheapest, preferring P0, then P1, on
// equal cost.
func fallbackPlacement(m *Mesh, terms []wedgeTerm, b Bundle) (pos [3]float64, uv map[int32][2]float64, cost float64) {
	mid := func() ([3]float64, map[int32][2]float64) {
		p := [3]float64{
			0.5 * (m.V[b.P0][0] + m.V[b.P1][0]),
			0.5 * (m.V[b.P0][1] + m.V[b.P1][1]),
			0.5 * (m.V[b.P0][2] + m.V[b.P1][2]),
		}
		u := make(map[int32][2]float64, len(terms))
		for _, t := range terms {
			switch {
			case t.p0UV >= 0 && t.p1UV >= 0:
				a, bb := m.TC[t.p0UV], m.TC[t.p1UV]
				u[t.survivorUV] = [2]float64{0.5 * (a[0] + bb[0]), 0.5 * (a[1] + bb[1])}
			case t.p0UV >= 0:
				u[t.survivorUV] = m.TC[t.p0UV]
			default:
				u[t.survivorUV] = m.TC[t.p1UV]
			}
		}
		return p, u
	}
	atVertex := func(v int32) ([3]float64, map[int32][2]float64) {
		p := m.V[v]
		u := make(map[int32][2]float64, len(terms))
		for _, t := range terms {
			if v == b.P0 && t.p0UV >= 0 {
				u[t.survivorUV] = m.TC[t.p0UV]
			} else if t.p1UV >= 0 {
				u[t.survivorUV] = m.TC[t.p1UV]
			} else {
				u[t.survivorUV] = m.TC[t.p0UV]
			}
		}
		return p, u
	}

	evalAt := func(p [3]float64, u map[int32][2]float64) float64 {
		sum := 0.0
		for _, t := range terms {
			uv := u[t.survivorUV]
			sum += t.quadric.eval([5]float64{p[0], p[1], p[2], uv[0], uv[1]})
		}
		return sum
	}

	mp, mu := mid()
	p0p, p0u := atVertex(b.P0)
	p1p, p1u := atVertex(b.P1)

	best := 0
	bestCost := evalAt(p0p, p0u)
	if c := evalAt(p1p, p1u); c < bestCost {
		best, bestCost = 1, c
	}
	if c := evalAt(mp, mu); c < bestCost {
		best, bestCost = 2, c
	}
	switch best {
	case 0:
		return p0p, p0u, bestCost
	case 1:
		return p1p, p1u, bestCost
	default:
		return mp, mu, bestCost
	}
}
