package decimater

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds of spec.md §7. NoFeasibleCollapse and NoProgress are returned
// via Result.Success=false plus a wrapped sentinel rather than aborting the
// caller's stack, matching the source's boolean-return propagation policy;
// they are exported so callers can errors.Is against them.
var (
	ErrInvalidInput       = errors.New("duvdecimate: invalid input")
	ErrNoFeasibleCollapse = errors.New("duvdecimate: no feasible collapse remains")
	ErrNoProgress         = errors.New("duvdecimate: no-progress abort")
)

// Result is the driver's output: the decimated mesh plus the diagnostics
// the source prints (spec.md §6's driver surface, enriched per SPEC_FULL.md
// §4 with before/after seam-edge counts).
type Result struct {
	Mesh            Mesh
	MaxError        float64
	Success         bool
	SeamEdgesBefore int
	SeamEdgesAfter  int
}

// Decimate implements component C8 (spec.md §4.8) end to end: builds C1–C3,
// primes C6 via C5 for every undirected edge, then repeats
// {pop -> collapse -> re-score} until the target vertex count, an empty or
// all-infinite queue, or a no-progress abort.
func Decimate(in Mesh, opts DecimateOptions) (out Result, err error) {
	n := len(in.V)
	if opts.TargetNumVertices <= 0 || opts.TargetNumVertices >= n {
		return out, fmt.Errorf("%w: target_num_vertices %d must be in (0, %d)", ErrInvalidInput, opts.TargetNumVertices, n)
	}
	for _, f := range in.F {
		for _, v := range f {
			if int(v) < 0 || int(v) >= n {
				return out, fmt.Errorf("%w: face references out-of-range vertex %d", ErrInvalidInput, v)
			}
		}
	}

	m := &Mesh{
		V:  append([][3]float64(nil), in.V...),
		TC: append([][2]float64(nil), in.TC...),
		F:  append([][3]int32(nil), in.F...),
		FT: append([][3]int32(nil), in.FT...),
	}
	m.rebuildEdgeFlaps()
	origFaceCount := len(m.F)

	scale := posScale(m.V, m.F)

	seamsList, boundaries, foldovers := classifySeams(m)
	seams := BuildSeamSet(m, seamsList, boundaries, foldovers, opts.PreserveBoundaries)
	seamEdgesBefore := seams.EdgeCount()

	infVertex, _, hasInfinity := connectBoundaryToInfinity(m)
	target := opts.TargetNumVertices
	if hasInfinity {
		target++
	} else {
		infVertex = -1
	}

	Vs, TCs := scaledCopies(m.V, m.TC, scale, opts.UVWeight)
	qm := buildInitialQuadrics(Vs, TCs, m.F, m.FT, infVertex)
	// Collapses run in the scaled metric the quadrics use, so placements,
	// fallbacks and the orientation check share one space; undone below.
	m.V = Vs
	if opts.UVWeight != 0 {
		m.TC = TCs
	}

	q := NewEdgeQueue()
	for e := range m.E {
		b := BuildBundle(m, int32(e), infVertex)
		cost, _ := Evaluate(m, seams, qm, opts, infVertex, int32(e), b)
		q.Insert(cost, int32(e))
	}

	remain := len(m.V)
	maxErr := 0.0
	clean := true
	prevE := int32(-1)
	prevFailedE := int32(-1)
	attemptedAny := false

	for remain > target {
		cost, e, ok := q.PeekMin()
		if !ok || math.IsInf(cost, 1) {
			break
		}

		if collapseEdge(m, seams, qm, q, opts, infVertex, e) {
			errVal := math.Sqrt(math.Max(0, cost)) / scale
			if errVal > maxErr {
				maxErr = errVal
			}
			remain--
			logProgress("collapsed edge %d, cost=%.6g, remain=%d", e, cost, remain)
		} else {
			ref := prevE
			if !opts.StrictNoProgress {
				ref = prevFailedE
			}
			if attemptedAny && ref == e {
				clean = false
				break
			}
			prevFailedE = e
		}
		prevE = e
		attemptedAny = true
	}

	uvUnscale := 1.0
	if opts.UVWeight != 0 {
		uvUnscale = 1 / opts.UVWeight
	}
	m.V, m.TC = scaledCopies(m.V, m.TC, 1/scale, uvUnscale)
	Vout, Fout, TCout, FTout := compact(m.V, m.F, m.TC, m.FT, origFaceCount)
	out.Mesh = Mesh{V: Vout, F: Fout, TC: TCout, FT: FTout}
	out.Mesh.rebuildEdgeFlaps()
	out.MaxError = maxErr
	out.Success = clean && remain <= target
	out.SeamEdgesBefore = seamEdgesBefore
	out.SeamEdgesAfter = seams.EdgeCount()

	logProgress("decimation finished: success=%v max_error=%.6g remain=%d target=%d", out.Success, out.MaxError, remain, target)

	if !out.Success {
		if !clean {
			return out, ErrNoProgress
		}
		return out, ErrNoFeasibleCollapse
	}
	return out, nil
}
