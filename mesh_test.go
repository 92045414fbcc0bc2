package decimater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tetrahedron returns a small closed, 2-manifold mesh (4 vertices, 4 faces,
// 6 edges, no boundary) with consistently outward-oriented faces, and a
// trivial 1:1 position/uv wedge mapping.
func tetrahedron() *Mesh {
	m := &Mesh{
		V: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		F: [][3]int32{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
	}
	m.TC = make([][2]float64, len(m.V))
	for i, v := range m.V {
		m.TC[i] = [2]float64{v[0], v[1]}
	}
	m.FT = append([][3]int32(nil), m.F...)
	m.rebuildEdgeFlaps()
	return m
}

func TestEdgeFlapsTetrahedronHasNoBoundary(t *testing.T) {
	m := tetrahedron()
	require.Len(t, m.E, 6)
	for e := range m.E {
		assert.NotEqual(t, int32(-1), m.EF[e][0], "edge %d has a boundary side on a closed mesh", e)
		assert.NotEqual(t, int32(-1), m.EF[e][1], "edge %d has a boundary side on a closed mesh", e)
	}
	assert.Len(t, m.EDead, len(m.E))
}

// TestEdgeFlapsRoundTripsThroughEMAP checks the EMAP/EI contract directly:
// for every (face, corner), the edge opposite that corner must connect the
// face's other two vertices, and the stored opposite-corner index in EI
// must point back at (face, corner)'s originating face.
func TestEdgeFlapsRoundTripsThroughEMAP(t *testing.T) {
	m := tetrahedron()
	for f := range m.F {
		for k := 0; k < 3; k++ {
			e := m.cornerOfEdge(int32(f), k)
			va, vb := m.F[f][(k+1)%3], m.F[f][(k+2)%3]
			a, b := m.E[e][0], m.E[e][1]
			assert.True(t, (a == va && b == vb) || (a == vb && b == va),
				"edge %d = (%d,%d), want unordered (%d,%d)", e, a, b, va, vb)

			side := 0
			if m.EF[e][0] != int32(f) {
				side = 1
			}
			assert.Equal(t, int32(f), m.EF[e][side])
			assert.Equal(t, int32(k), m.EI[e][side])
		}
	}
}

func TestCornerOfFindsAndMisses(t *testing.T) {
	face := [3]int32{5, 9, 2}
	assert.Equal(t, 1, cornerOf(face, 9))
	assert.Equal(t, -1, cornerOf(face, 42))
}
