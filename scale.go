package decimater

import "math"

// DecimateOptions carries the tunables of the §6 driver surface
// (`decimate(... seam_aware_degree, preserve_boundaries, uv_weight)`) plus
// the §9 open-question flag, passed by value into Decimate rather than held
// as hidden global state (spec.md §5).
type DecimateOptions struct {
	TargetNumVertices  int
	SeamAwareDegree    SeamAwareDegree
	PreserveBoundaries bool
	UVWeight           float64

	// StrictNoProgress resolves spec.md §9's open question: the source
	// compares the no-progress sentinel against the immediately preceding
	// *attempted* edge id regardless of whether that attempt succeeded.
	// Default true reproduces that literal behavior; false instead compares
	// only against the preceding *failed* attempt, which is arguably the
	// author's real intent but not what the source does.
	StrictNoProgress bool
}

// DefaultOptions mirrors decimater.cpp's main() defaults: Seamless
// strictness, boundaries not preserved, unit UV weight.
func DefaultOptions(targetNumVertices int) DecimateOptions {
	return DecimateOptions{
		TargetNumVertices:  targetNumVertices,
		SeamAwareDegree:    Seamless,
		PreserveBoundaries: false,
		UVWeight:           1.0,
		StrictNoProgress:   true,
	}
}

// posScale implements spec.md §4.8's `pos_scale = sqrt(1.0 / mean_triangle_area)`
// (decimater.cpp's `TARGET_AVG_AREA`/`avg_area` computation): the scale that
// normalizes mean triangle area to 1 in the scaled-position metric, so
// geometric and UV error terms combine on comparable footing.
func posScale(V [][3]float64, F [][3]int32) float64 {
	if len(F) == 0 {
		return 1.0
	}
	total := 0.0
	for _, f := range F {
		total += triangleArea3D(V[f[0]], V[f[1]], V[f[2]])
	}
	avgArea := total / float64(len(F))
	if avgArea <= 1e-12 {
		return 1.0
	}
	return math.Sqrt(1.0 / avgArea)
}

// scaledCopies returns V scaled by posScale and TC scaled by uvWeight,
// per spec.md §4.3: "Position coordinates are pre-scaled by the global
// pos_scale ... UV coordinates are pre-scaled by uv_weight."
func scaledCopies(V [][3]float64, TC [][2]float64, posScale, uvWeight float64) ([][3]float64, [][2]float64) {
	Vs := make([][3]float64, len(V))
	for i, v := range V {
		Vs[i] = [3]float64{v[0] * posScale, v[1] * posScale, v[2] * posScale}
	}
	TCs := make([][2]float64, len(TC))
	for i, t := range TC {
		TCs[i] = [2]float64{t[0] * uvWeight, t[1] * uvWeight}
	}
	return Vs, TCs
}

// buildInitialQuadrics implements decimate.cpp's `half_edge_qslim_5d`: for
// every corner (f,k) accumulate the face's fundamental 5D quadric (scaled
// position/uv space) into Q[F[f][k]][FT[f][k]]. A virtual face touching the
// infinity vertex contributes nothing (its wedge quadric stays zero per
// spec.md §3's "Infinity sentinel vertex").
func buildInitialQuadrics(Vs [][3]float64, TCs [][2]float64, F, FT [][3]int32, infVertex int32) QuadricMap {
	qm := NewQuadricMap()
	for f := range F {
		face := F[f]
		if face[0] == infVertex || face[1] == infVertex || face[2] == infVertex {
			for k := 0; k < 3; k++ {
				qm.addTo(face[k], FT[f][k], &SymMat6{})
			}
			continue
		}
		q := faceQuadric(Vs[face[0]], Vs[face[1]], Vs[face[2]], TCs[FT[f][0]], TCs[FT[f][1]], TCs[FT[f][2]])
		for k := 0; k < 3; k++ {
			qm.addTo(face[k], FT[f][k], q)
		}
	}
	return qm
}
