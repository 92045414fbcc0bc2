package decimater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestFaceQuadricVanishesAtOwnCorners(t *testing.T) {
	p0 := [3]float64{0, 0, 0}
	p1 := [3]float64{2, 0, 0}
	p2 := [3]float64{0, 3, 0}
	t0 := [2]float64{0, 0}
	t1 := [2]float64{1, 0}
	t2 := [2]float64{0, 1}

	q := faceQuadric(p0, p1, p2, t0, t1, t2)

	for _, c := range []struct {
		name string
		x    [5]float64
	}{
		{"p0", [5]float64{p0[0], p0[1], p0[2], t0[0], t0[1]}},
		{"p1", [5]float64{p1[0], p1[1], p1[2], t1[0], t1[1]}},
		{"p2", [5]float64{p2[0], p2[1], p2[2], t2[0], t2[1]}},
	} {
		assert.InDelta(t, 0, q.eval(c.x), eps, "quadric at its own corner %s", c.name)
	}

	// A point well off the plane/uv-plane incurs a strictly positive cost.
	off := [5]float64{0, 0, 5, 0, 0}
	assert.Greater(t, q.eval(off), 0.0, "quadric off-plane")
}

func TestFaceQuadricDegenerateIsZero(t *testing.T) {
	// Three collinear points: zero area.
	p0 := [3]float64{0, 0, 0}
	p1 := [3]float64{1, 0, 0}
	p2 := [3]float64{2, 0, 0}
	t0 := [2]float64{0, 0}
	t1 := [2]float64{1, 0}
	t2 := [2]float64{2, 0}

	q := faceQuadric(p0, p1, p2, t0, t1, t2)
	var zero SymMat6
	assert.Equal(t, zero.M, q.M, "degenerate triangle quadric should be the zero matrix")
}

func TestQuadricMapAddGetDelete(t *testing.T) {
	qm := NewQuadricMap()
	a := &SymMat6{}
	a.M[0][0] = 1
	b := &SymMat6{}
	b.M[0][0] = 4

	qm.addTo(10, 100, a)
	qm.addTo(10, 100, b)

	got := qm.get(10, 100)
	require.NotNil(t, got)
	assert.InDelta(t, 5, got.M[0][0], eps)
	assert.Nil(t, qm.get(10, 999), "get() on an absent wedge should return nil")

	qm.addTo(10, 200, a)
	assert.Len(t, qm[10], 2)

	qm.delete(10, 100)
	assert.Nil(t, qm.get(10, 100), "delete() should remove the wedge")
	_, ok := qm[10]
	assert.True(t, ok, "delete() should not drop the position entry while a wedge remains")

	qm.deleteVertex(10)
	_, ok = qm[10]
	assert.False(t, ok, "deleteVertex() should drop the position entry")
}

func TestSymMat6CloneIsIndependent(t *testing.T) {
	a := &SymMat6{}
	a.M[2][3] = 7
	clone := a.Clone()
	clone.M[2][3] = 99
	assert.Equal(t, 7.0, a.M[2][3], "mutating a clone should not mutate the original")
}

// TestSymMat6SolveFindsPlaneMinimum exercises the 1-wedge fast path directly:
// a single face quadric's zero set is a whole 2D plane in 5D (a singular
// system), so three faces sharing corner p0 are summed; their zero sets meet
// only at p0, so Solve() must return a point for which eval() is ~0.
func TestSymMat6SolveFindsPlaneMinimum(t *testing.T) {
	p0 := [3]float64{1, 0, 0}
	p1 := [3]float64{3, 0, 0}
	p2 := [3]float64{1, 3, 0}
	p3 := [3]float64{1, 0, 3}
	t0 := [2]float64{0, 0}
	t1 := [2]float64{1, 0}
	t2 := [2]float64{0, 1}
	t3 := [2]float64{1, 1}

	q := faceQuadric(p0, p1, p2, t0, t1, t2)
	q.Add(faceQuadric(p0, p2, p3, t0, t2, t3))
	q.Add(faceQuadric(p0, p3, p1, t0, t3, t1))
	x, cost, ok := q.Solve()
	require.True(t, ok, "Solve() on a well-posed sum of face quadrics")
	assert.InDelta(t, 0, cost, 1e-6, "solved minimum should sit on the quadric's zero set")
	assert.InDelta(t, 0, q.eval(x), 1e-6, "solved point should evaluate back to ~0 cost")
}

func TestSymMat6SolveRejectsSingularSystem(t *testing.T) {
	var q SymMat6 // an all-zero quadric has a singular 5x5 system
	_, _, ok := q.Solve()
	assert.False(t, ok, "Solve() on a zero quadric should report an ill-conditioned system")
}
