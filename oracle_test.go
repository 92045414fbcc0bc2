package decimater

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluateSeamlessRejectsWedgeCountIncrease exercises the Seamless
// wedge-count legality gate (oracle.go's Evaluate, the
// opts.SeamAwareDegree == Seamless block): a collapse that would merge more
// wedges than either endpoint already carries is illegal under Seamless,
// regardless of placement quality, and must report +Inf before any
// placement is even attempted.
func TestEvaluateSeamlessRejectsWedgeCountIncrease(t *testing.T) {
	qm := NewQuadricMap()
	qm.addTo(0, 100, &SymMat6{}) // vertex 0 carries exactly one wedge
	qm.addTo(1, 200, &SymMat6{}) // vertex 1 carries two wedges
	qm.addTo(1, 201, &SymMat6{})

	b := Bundle{
		Edge: 0, P0: 0, P1: 1, FaceL: 0, FaceR: 1,
		Merges:    []WedgeMerge{{SurvivorUV: 200, VictimUV: 100}},
		Transfers: []int32{300}, // pushes mergedWedges to 2, above min(1,2)=1
	}

	opts := DecimateOptions{SeamAwareDegree: Seamless}
	cost, _ := Evaluate(&Mesh{}, NewSeamSet(), qm, opts, -1, 0, b)
	assert.True(t, math.IsInf(cost, 1), "cost = %v, want +Inf", cost)
}

// TestEvaluateSingleWedgeBundleUsesTheFastPath confirms Evaluate's k==1
// branch (oracle.go's solveSingleWedge call) actually runs and produces a
// sane placement: on quadMesh(true) (see seams_test.go), with no infinity
// closure, the ring walks of the diagonal (0,2) stop at the open boundary and
// yield a single unpaired transfer, so bundleTerms has length 1. The four
// coplanar corners make the 5x5 system singular, so the placement itself
// comes from fallbackPlacement.
func TestEvaluateSingleWedgeBundleUsesTheFastPath(t *testing.T) {
	m := quadMesh(true)
	e := findEdge(m, 0, 2)
	require.NotEqual(t, int32(-1), e)

	b := BuildBundle(m, e, -1)
	require.False(t, b.TouchesInfinity)

	qm := NewQuadricMap()
	for f := range m.F {
		face, ft := m.F[f], m.FT[f]
		q := faceQuadric(m.V[face[0]], m.V[face[1]], m.V[face[2]], m.TC[ft[0]], m.TC[ft[1]], m.TC[ft[2]])
		for k := 0; k < 3; k++ {
			qm.addTo(face[k], ft[k], q)
		}
	}

	terms := bundleTerms(qm, b)
	require.Len(t, terms, 1, "this diagonal collapse should produce exactly one wedge term")

	cost, placement := Evaluate(m, NewSeamSet(), qm, DefaultOptions(3), -1, e, b)
	require.False(t, math.IsInf(cost, 1), "a coplanar, uv-continuous collapse should be legal")
	assert.False(t, math.IsNaN(cost))
	for _, c := range placement.Pos {
		assert.False(t, math.IsInf(c, 0) || math.IsNaN(c))
	}
}

// TestFallbackPlacementPicksLowestCostEndpoint exercises fallbackPlacement
// (oracle.go's ill-conditioned fallback) directly: a quadric penalizing
// distance from x=0 makes P0 (sitting at x=0) strictly cheaper than P1 or
// the midpoint, so the endpoint branch must win.
func TestFallbackPlacementPicksLowestCostEndpoint(t *testing.T) {
	m := &Mesh{
		V:  [][3]float64{{0, 0, 0}, {2, 0, 0}},
		TC: [][2]float64{{0, 0}, {5, 5}},
	}
	b := Bundle{P0: 0, P1: 1}

	var q SymMat6
	q.M[0][0] = 1 // eval(x,y,z,u,v) = x^2

	terms := []wedgeTerm{{survivorUV: 10, quadric: &q, p0UV: 0, p1UV: 1}}

	pos, uv, cost := fallbackPlacement(m, terms, b)
	assert.Equal(t, m.V[0], pos, "P0 sits at x=0, the quadric's unique minimum")
	assert.InDelta(t, 0, cost, 1e-9)
	assert.Equal(t, m.TC[0], uv[10])
}

// TestFallbackPlacementFallsBackToMidpointOnTie exercises the midpoint
// candidate: a quadric penalizing distance from x=1 costs the same at both
// endpoints (x=0 and x=2), and the midpoint (which sits exactly at the
// minimum) is strictly cheaper than either, so it must be chosen.
func TestFallbackPlacementFallsBackToMidpointOnTie(t *testing.T) {
	m := &Mesh{
		V:  [][3]float64{{0, 0, 0}, {2, 0, 0}},
		TC: [][2]float64{{0, 0}, {2, 0}},
	}
	b := Bundle{P0: 0, P1: 1}

	// (x-1)^2 = x^2 - 2x + 1, in homogeneous form h=(x,y,z,u,v,1).
	var q SymMat6
	q.M[0][0] = 1
	q.M[0][5] = -1
	q.M[5][0] = -1
	q.M[5][5] = 1

	terms := []wedgeTerm{{survivorUV: 10, quadric: &q, p0UV: 0, p1UV: 1}}

	pos, _, cost := fallbackPlacement(m, terms, b)
	assert.InDelta(t, 1, pos[0], 1e-9, "midpoint between x=0 and x=2")
	assert.InDelta(t, 0, cost, 1e-9)
}
