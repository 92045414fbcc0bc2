package decimater

// SeamSet is the symmetric adjacency over position-vertex ids marking seam,
// boundary, and fold-over edges (component C2).
type SeamSet struct {
	adj map[int32]map[int32]struct{}
}

// NewSeamSet returns an empty seam set.
func NewSeamSet() *SeamSet {
	return &SeamSet{adj: make(map[int32]map[int32]struct{})}
}

// Insert adds the undirected pair (u,v); idempotent.
func (s *SeamSet) Insert(u, v int32) {
	if u == v {
		return
	}
	if s.adj[u] == nil {
		s.adj[u] = make(map[int32]struct{})
	}
	if s.adj[v] == nil {
		s.adj[v] = make(map[int32]struct{})
	}
	s.adj[u][v] = struct{}{}
	s.adj[v][u] = struct{}{}
}

// Erase removes the undirected pair (u,v) if present.
func (s *SeamSet) Erase(u, v int32) {
	if nbrs, ok := s.adj[u]; ok {
		delete(nbrs, v)
		if len(nbrs) == 0 {
			delete(s.adj, u)
		}
	}
	if nbrs, ok := s.adj[v]; ok {
		delete(nbrs, u)
		if len(nbrs) == 0 {
			delete(s.adj, v)
		}
	}
}

// Contains reports whether (u,v) is a seam pair.
func (s *SeamSet) Contains(u, v int32) bool {
	nbrs, ok := s.adj[u]
	if !ok {
		return false
	}
	_, ok = nbrs[v]
	return ok
}

// DegreeIn counts v's seam neighbors.
func (s *SeamSet) DegreeIn(v int32) int {
	return len(s.adj[v])
}

// OnSeam reports whether v participates in any seam pair.
func (s *SeamSet) OnSeam(v int32) bool {
	return len(s.adj[v]) > 0
}

// Remap applies "every seam (from,x) becomes (to,x)" atomically after a
// collapse merging from -> to (spec.md §3, §4.2 operation `remap`),
// dropping self-seams (x==to) and duplicates.
func (s *SeamSet) Remap(from, to int32) {
	nbrs, ok := s.adj[from]
	if !ok {
		return
	}
	neighbors := make([]int32, 0, len(nbrs))
	for x := range nbrs {
		neighbors = append(neighbors, x)
	}
	delete(s.adj, from)
	for _, x := range neighbors {
		if inner, ok := s.adj[x]; ok {
			delete(inner, from)
			if len(inner) == 0 {
				delete(s.adj, x)
			}
		}
		if x != to {
			s.Insert(to, x)
		}
	}
}

// EdgeCount returns the number of distinct undirected seam pairs.
func (s *SeamSet) EdgeCount() int {
	total := 0
	for _, nbrs := range s.adj {
		total += len(nbrs)
	}
	return total / 2
}

// BuildSeamSet populates S per spec.md §4.2: every seam/boundary/fold-over
// pair, plus (if preserveBoundaries) every mesh boundary edge. boundaries
// are passed in separately from the full classification so callers that
// already classified once don't redo it.
func BuildSeamSet(m *Mesh, seams, boundaries, foldovers []EdgeClass, preserveBoundaries bool) *SeamSet {
	s := NewSeamSet()
	for _, c := range seams {
		u, v := m.positionPair(c.Face, c.Corner)
		s.Insert(u, v)
	}
	for _, c := range boundaries {
		u, v := m.positionPair(c.Face, c.Corner)
		s.Insert(u, v)
	}
	for _, c := range foldovers {
		u, v := m.positionPair(c.Face, c.Corner)
		s.Insert(u, v)
	}
	if preserveBoundaries {
		for _, c := range boundaries {
			u, v := m.positionPair(c.Face, c.Corner)
			s.Insert(u, v)
		}
	}
	return s
}
