package decimater

import "math"

// collapseEdge implements component C7 (spec.md §4.7): atomically applies
// one legal collapse of undirected edge e, or returns false without side
// effects if it is no longer legal. Re-evaluating the oracle at the top
// (rather than trusting the queue's cached cost) implements step 1's
// staleness check; deciding the survivor before that evaluation implements
// step 2, since spec.md §4.5's legality and cost are both symmetric in
// which endpoint is named "p0" (see bundle.go's BuildBundle doc) — the
// combined one-ring orientation gate that step 2's "fewer induced flips"
// tie-break refers to has already forced zero flips for any candidate that
// reaches here, for either labeling, so the tie-break always reduces to
// "lower id survives".
func collapseEdge(m *Mesh, seams *SeamSet, qm QuadricMap, q *EdgeQueue, opts DecimateOptions, infVertex int32, e int32) bool {
	if int(e) >= len(m.EDead) || m.EDead[e] {
		return false
	}

	a, b := m.E[e][0], m.E[e][1]
	fL, fR := m.EF[e][0], m.EF[e][1]
	vKeep, vKill := a, b
	if b < a {
		vKeep, vKill = b, a
	}
	assertf("collapsing edge must reference two distinct faces or a boundary", func() bool {
		return fL != fR || fL == NullFace
	})

	bundle := buildBundleDirected(m, e, vKill, vKeep, infVertex)
	cost, placement := Evaluate(m, seams, qm, opts, infVertex, e, bundle)
	if math.IsInf(cost, 1) {
		return false
	}

	victimToSurvivor := make(map[int32]int32, len(bundle.Merges))
	for _, mg := range bundle.Merges {
		victimToSurvivor[mg.VictimUV] = mg.SurvivorUV
	}

	// Step 5 (a,b,c): retarget the two edges opposite vKeep's corner in
	// fL/fR — the edges touching vKill that must disappear along with
	// vKill — into the edges opposite vKill's corner, which keep their
	// identity and absorb the far-side neighbor that the removed edge used
	// to carry. (Reading spec.md's "edges opposite v_kill" as shorthand for
	// "the v_kill-associated edges": the edge geometrically opposite vKill's
	// corner already references vKeep correctly and is the one that must
	// survive, per the standard half-edge collapse topology this spec's
	// edge-flap contract is drawn from.)
	var startFace int32 = NullFace
	for _, f := range [2]int32{fL, fR} {
		if f == NullFace {
			continue
		}
		kKeep := cornerOf(m.F[f], vKeep)
		kKill := cornerOf(m.F[f], vKill)
		removedEdge := m.cornerOfEdge(f, kKeep)
		survivingEdge := m.cornerOfEdge(f, kKill)
		if removedEdge == survivingEdge {
			continue
		}

		farFace, farSide, farCorner := otherFaceSide(m, removedEdge, f)
		survivorSide := 0
		if m.EF[survivingEdge][0] != f {
			survivorSide = 1
		}
		m.EF[survivingEdge][survivorSide] = farFace
		m.EI[survivingEdge][survivorSide] = farCorner
		if farFace != NullFace {
			m.EMAP[int(farFace)*3+int(farCorner)] = survivingEdge
			startFace = farFace
		}
		_ = farSide
		markEdgeDead(m, q, removedEdge)
	}
	markEdgeDead(m, q, e)

	// Step 3: NULL_FACE the two collapsed faces.
	for _, f := range [2]int32{fL, fR} {
		if f == NullFace {
			continue
		}
		m.F[f] = [3]int32{NullFace, NullFace, NullFace}
		m.FT[f] = [3]int32{NullFace, NullFace, NullFace}
	}

	// Step 3/4: rewrite every remaining face incident to vKill, the E entries
	// of its two edges at that corner, and its FT per the wedge pairing
	// (unpaired wedges keep their uv id — they become a new Q entry at
	// vKeep, not a relabeling).
	for fi := range m.F {
		f := int32(fi)
		k := cornerOf(m.F[f], vKill)
		if f == fL || f == fR || k < 0 {
			continue
		}
		m.F[f][k] = vKeep
		for _, c := range [2]int{(k + 1) % 3, (k + 2) % 3} {
			ed := m.cornerOfEdge(f, c)
			for s := 0; s < 2; s++ {
				if m.E[ed][s] == vKill {
					m.E[ed][s] = vKeep
				}
			}
		}
		if newUV, ok := victimToSurvivor[m.FT[f][k]]; ok {
			m.FT[f][k] = newUV
		}
		face := m.F[f]
		assertf("rewritten face must not repeat a vertex", func() bool {
			return face[0] != face[1] && face[1] != face[2] && face[0] != face[2]
		})
		if startFace == NullFace {
			startFace = f
		}
	}

	// Step 6: move the survivor's position and every merged/transferred uv.
	m.V[vKeep] = placement.Pos
	for uv, co := range placement.UV {
		m.TC[uv] = co
	}

	// Step 7: merge quadrics into the survivor, then drop the victim.
	for _, mg := range bundle.Merges {
		if src := qm.get(vKill, mg.VictimUV); src != nil {
			qm.addTo(vKeep, mg.SurvivorUV, src)
		}
	}
	for _, uv := range bundle.Transfers {
		if src := qm.get(vKill, uv); src != nil {
			qm.addTo(vKeep, uv, src)
		}
	}
	qm.deleteVertex(vKill)

	// Step 8: remap the seam set, dropping self-seams.
	seams.Remap(vKill, vKeep)

	// Step 9: re-score every live edge in vKeep's new one-ring.
	if startFace != NullFace {
		for _, e2 := range edgesAroundVertex(m, vKeep, startFace) {
			if m.EDead[e2] {
				continue
			}
			b2 := BuildBundle(m, e2, infVertex)
			c2, _ := Evaluate(m, seams, qm, opts, infVertex, e2, b2)
			q.Update(e2, c2)
		}
	}

	return true
}

// otherFaceSide returns the face on edge's other side from f, along with
// which slot (0 or 1) that face occupies and its opposite-corner index.
func otherFaceSide(m *Mesh, edge, f int32) (otherFace int32, side int, corner int32) {
	if m.EF[edge][0] == f {
		return m.EF[edge][1], 1, m.EI[edge][1]
	}
	return m.EF[edge][0], 0, m.EI[edge][0]
}

// markEdgeDead retires edge from both the mesh and the live queue.
func markEdgeDead(m *Mesh, q *EdgeQueue, edge int32) {
	m.EDead[edge] = true
	q.Erase(edge)
}

// pickRingStart returns a face guaranteed to be incident to vKill and not
// one of the two dying faces, preferring the already-discovered startFace
// from the edge-surgery pass and falling back to a linear scan in the rare
// case both sides of fL/fR's retargeted edges were boundary-virtual.
func pickRingStart(m *Mesh, vKill, fL, fR, startFace int32) int32 {
	if startFace != NullFace {
		return startFace
	}
	for f := range m.F {
		face := m.F[f]
		if int32(f) == fL || int32(f) == fR {
			continue
		}
		if face[0] == vKill || face[1] == vKill || face[2] == vKill {
			return int32(f)
		}
	}
	return fL
}

// edgesAroundVertex returns every live undirected edge incident to v,
// discovered by walking the face ring starting at startFace.
func edgesAroundVertex(m *Mesh, v, startFace int32) []int32 {
	seen := make(map[int32]bool)
	var edges []int32
	for _, f := range ringFacesAll(m, v, startFace, -1) {
		k := cornerOf(m.F[f], v)
		for _, c := range [2]int{(k + 1) % 3, (k + 2) % 3} {
			e := m.cornerOfEdge(f, c)
			if !seen[e] && !m.EDead[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}
