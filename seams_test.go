package decimater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadMesh returns two triangles sharing a diagonal over a unit square, an
// open mesh with four boundary edges and one interior diagonal. uvContinuous
// selects whether the two triangles share their uv wedges across the
// diagonal (continuous) or carry independent wedges there (a uv seam).
func quadMesh(uvContinuous bool) *Mesh {
	m := &Mesh{
		V: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{1, 1, 0},
			{0, 1, 0},
		},
		F: [][3]int32{
			{0, 1, 2},
			{0, 2, 3},
		},
	}
	if uvContinuous {
		m.TC = [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		m.FT = [][3]int32{{0, 1, 2}, {0, 2, 3}}
	} else {
		m.TC = [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}, {1, 1}}
		m.FT = [][3]int32{{0, 1, 2}, {4, 5, 3}}
	}
	m.rebuildEdgeFlaps()
	return m
}

func TestClassifySeamsContinuousUVHasNoSeam(t *testing.T) {
	m := quadMesh(true)
	seams, boundaries, foldovers := classifySeams(m)
	assert.Empty(t, seams, "continuous uv should have no seams")
	assert.Len(t, boundaries, 4)
	assert.Empty(t, foldovers)
}

func TestClassifySeamsDiscontinuousUVIsSeam(t *testing.T) {
	m := quadMesh(false)
	seams, boundaries, _ := classifySeams(m)
	require.Len(t, seams, 1)
	u, v := m.positionPair(seams[0].Face, seams[0].Corner)
	assert.True(t, (u == 0 && v == 2) || (u == 2 && v == 0), "seam positionPair = (%d,%d), want (0,2)", u, v)
	assert.Len(t, boundaries, 4)
}

func TestBuildSeamSetContainsDetectedSeam(t *testing.T) {
	m := quadMesh(false)
	seams, boundaries, foldovers := classifySeams(m)
	s := BuildSeamSet(m, seams, boundaries, foldovers, false)
	assert.True(t, s.Contains(0, 2), "seam set should contain the detected (0,2) seam")
	assert.True(t, s.Contains(1, 2), "boundary edge (1,2) also enters the seam set")
}

func TestSeamSetRemapMergesNeighborsAndDropsSelfLoop(t *testing.T) {
	s := NewSeamSet()
	s.Insert(1, 2)
	s.Insert(1, 3)
	s.Insert(2, 3) // so that remapping 1 -> 2 turns (1,3) into a duplicate of (2,3)

	s.Remap(1, 2)

	assert.False(t, s.OnSeam(1), "vertex 1 should be gone after being remapped away")
	assert.True(t, s.Contains(2, 3), "surviving pair (2,3) should remain after remap")
	assert.Equal(t, 1, s.DegreeIn(2), "DegreeIn(2): only the (2,3) pair; (1,2) must not become a self-loop")
}

func TestSeamSetEdgeCount(t *testing.T) {
	s := NewSeamSet()
	s.Insert(1, 2)
	s.Insert(2, 3)
	assert.Equal(t, 2, s.EdgeCount())
	s.Erase(1, 2)
	assert.Equal(t, 1, s.EdgeCount())
}
