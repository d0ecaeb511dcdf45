package include

import "sort"

// VisitedFile is one resolved file together with the deepest recursion depth
// at which resolution reached it.
type VisitedFile struct {
	Path  string
	Depth int
}

// Edge is a single observed include directive: From's scan found a directive
// naming To.
type Edge struct {
	From string
	To   string
}

// State records every file discovered while walking the include graph, keyed
// by canonical path. It is mutated only by the Resolver and read by the
// Flattener once resolution has finished.
type State struct {
	depths   map[string]int
	order    []string
	edges    []Edge
	edgeSeen map[Edge]bool
}

func NewState() *State {
	return &State{
		depths:   make(map[string]int),
		edgeSeen: make(map[Edge]bool),
	}
}

// Depth reports the recorded depth for path and whether path has been visited.
func (s *State) Depth(path string) (int, bool) {
	depth, ok := s.depths[path]
	return depth, ok
}

// Visit records path at the given depth, inserting it on first sight and
// overwriting the recorded depth otherwise.
func (s *State) Visit(path string, depth int) {
	if _, ok := s.depths[path]; !ok {
		s.order = append(s.order, path)
	}
	s.depths[path] = depth
}

// Forget removes path from the state, undoing a speculative Visit after the
// file turned out to be unreadable.
func (s *State) Forget(path string) {
	if _, ok := s.depths[path]; !ok {
		return
	}
	delete(s.depths, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// AddEdge records that from's scan found an include directive naming to.
// Duplicate directives collapse into a single edge.
func (s *State) AddEdge(from, to string) {
	e := Edge{From: from, To: to}
	if s.edgeSeen[e] {
		return
	}
	s.edgeSeen[e] = true
	s.edges = append(s.edges, e)
}

// Edges returns the observed directives whose both endpoints are still
// recorded, in observation order. Edges into files whose entries were undone
// by a failed open are excluded.
func (s *State) Edges() []Edge {
	edges := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if _, ok := s.depths[e.From]; !ok {
			continue
		}
		if _, ok := s.depths[e.To]; !ok {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// Len returns the number of recorded files.
func (s *State) Len() int {
	return len(s.depths)
}

// Ordered returns the recorded files sorted by depth, deepest first. Files at
// the same depth keep their first-visit order so output is reproducible.
func (s *State) Ordered() []VisitedFile {
	files := make([]VisitedFile, 0, len(s.order))
	for _, path := range s.order {
		files = append(files, VisitedFile{Path: path, Depth: s.depths[path]})
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Depth > files[j].Depth
	})
	return files
}
