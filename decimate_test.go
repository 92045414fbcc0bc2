package decimater_test

import (
	"math"
	"testing"

	decimater "github.com/FV-ConeLabs/SeamAwareDecimater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tetrahedronMesh() decimater.Mesh {
	return decimater.Mesh{
		V: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		TC: [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		F: [][3]int32{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
		FT: [][3]int32{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
	}
}

// TestDecimateTetrahedronCannotShrink is spec scenario 1: a tetrahedron
// cannot lose a vertex without two of its faces collapsing onto the same
// three vertices (a duplicate face), so every candidate edge is illegal and
// the driver must report failure with the mesh untouched.
func TestDecimateTetrahedronCannotShrink(t *testing.T) {
	in := tetrahedronMesh()
	opts := decimater.DefaultOptions(3)

	out, err := decimater.Decimate(in, opts)

	require.Error(t, err)
	assert.ErrorIs(t, err, decimater.ErrNoFeasibleCollapse)
	assert.False(t, out.Success)
	assert.Len(t, out.Mesh.V, len(in.V), "vertex count must be unchanged")
	assert.Len(t, out.Mesh.F, len(in.F), "face count must be unchanged")
}

func quadMesh() decimater.Mesh {
	return decimater.Mesh{
		V: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{1, 1, 0},
			{0, 1, 0},
		},
		TC: [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		F: [][3]int32{
			{0, 1, 2},
			{0, 2, 3},
		},
		FT: [][3]int32{
			{0, 1, 2},
			{0, 2, 3},
		},
	}
}

// TestDecimateQuadCollapsesToOneTriangle is spec scenario 2. Strictness is
// pinned to NoUVShapePreserving here to keep seam strictness out of the
// scenario (stated purely in terms of the placement/cost oracle). The pin is
// not what makes the collapse legal: the diagonal is rejected at every
// strictness (its endpoints also share the infinity vertex, failing the
// link condition), and the collapse that happens is of a boundary edge, each
// of which is seam-interior, so the default Seamless strictness reaches the
// same one-triangle result.
func TestDecimateQuadCollapsesToOneTriangle(t *testing.T) {
	in := quadMesh()
	opts := decimater.DefaultOptions(3)
	opts.SeamAwareDegree = decimater.NoUVShapePreserving

	out, err := decimater.Decimate(in, opts)

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Len(t, out.Mesh.V, 3)
	assert.Len(t, out.Mesh.F, 1)
	assert.LessOrEqual(t, out.MaxError, 1e-6, "coplanar, in-parameterization collapse should carry ~0 error")
	for _, v := range out.Mesh.V {
		for _, c := range v {
			assert.False(t, math.IsInf(c, 0) || math.IsNaN(c), "output vertex %v contains a non-finite coordinate", v)
		}
	}
}

func TestDecimateRejectsOutOfRangeTarget(t *testing.T) {
	in := quadMesh()

	_, err := decimater.Decimate(in, decimater.DefaultOptions(0))
	assert.ErrorIs(t, err, decimater.ErrInvalidInput, "target 0")

	_, err = decimater.Decimate(in, decimater.DefaultOptions(len(in.V)))
	assert.ErrorIs(t, err, decimater.ErrInvalidInput, "target == len(V)")
}

func TestDecimateRejectsOutOfRangeFaceIndex(t *testing.T) {
	in := quadMesh()
	in.F = append(in.F, [3]int32{0, 1, 99})
	in.FT = append(in.FT, [3]int32{0, 1, 2})

	_, err := decimater.Decimate(in, decimater.DefaultOptions(3))
	assert.ErrorIs(t, err, decimater.ErrInvalidInput)
}

// TestDecimateNeverLeaksTheInfinityVertex is spec scenario 6's closing
// guarantee: whatever boundary regularization happens internally, the
// compacted output never contains the infinity sentinel's +Inf coordinates
// or references a face beyond the output's own vertex count.
func TestDecimateNeverLeaksTheInfinityVertex(t *testing.T) {
	in := quadMesh()
	opts := decimater.DefaultOptions(3)
	opts.SeamAwareDegree = decimater.NoUVShapePreserving

	out, err := decimater.Decimate(in, opts)
	require.NoError(t, err)

	for _, v := range out.Mesh.V {
		for _, c := range v {
			assert.False(t, math.IsInf(c, 0), "output vertex %v carries an infinite coordinate", v)
		}
	}
	for _, f := range out.Mesh.F {
		for _, idx := range f {
			assert.True(t, int(idx) >= 0 && int(idx) < len(out.Mesh.V),
				"output face %v references vertex %d, out of range for %d vertices", f, idx, len(out.Mesh.V))
		}
	}
}
