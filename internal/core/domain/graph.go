package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph represents the include graph of a manifest set. Nodes are manifest
// files keyed by resolved path; edges point from an including file to its
// include targets.
type Graph struct {
	manifests       map[InternedString]*Manifest
	includes        map[InternedString][]InternedString
	processingOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		manifests: make(map[InternedString]*Manifest),
		includes:  make(map[InternedString][]InternedString),
	}
}

// AddManifest adds a parsed manifest to the graph.
// It returns an error if a manifest with the same path already exists.
func (g *Graph) AddManifest(m *Manifest) error {
	if _, exists := g.manifests[m.Path]; exists {
		return zerr.With(zerr.Wrap(ErrManifestAlreadyAdded, ""), "path", m.Path.String())
	}
	g.manifests[m.Path] = m
	return nil
}

// AddInclude records an include edge from one manifest to another.
// Both paths must be in resolved form.
func (g *Graph) AddInclude(from, to InternedString) {
	g.includes[from] = append(g.includes[from], to)
}

// GetManifest looks up a manifest by resolved path.
func (g *Graph) GetManifest(path InternedString) (*Manifest, bool) {
	m, ok := g.manifests[path]
	return m, ok
}

// Roots returns the manifest paths that no other manifest includes.
func (g *Graph) Roots() []InternedString {
	included := make(map[InternedString]bool)
	for _, targets := range g.includes {
		for _, t := range targets {
			included[t] = true
		}
	}
	var roots []InternedString
	for _, path := range g.processingOrder {
		if !included[path] {
			roots = append(roots, path)
		}
	}
	return roots
}

// Validate checks for cycles in the include graph using a topological sort.
// It populates the processing order if successful: included files come before
// the files that include them, matching installer semantics.
func (g *Graph) Validate() error {
	g.processingOrder = make([]InternedString, 0, len(g.manifests))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		if _, exists := g.manifests[u]; !exists {
			return zerr.With(zerr.Wrap(ErrIncludeNotFound, ""), "path", u.String())
		}

		for _, dep := range g.includes[u] {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.processingOrder = append(g.processingOrder, u)
		return nil
	}

	// Iterate over all manifests to cover disconnected components. Map order
	// is random but any topological order over the same edges is valid here;
	// the loader adds manifests in deterministic discovery order anyway.
	for p := range g.manifests {
		if visited[p] == 0 {
			if err := visit(p); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(ErrIncludeCycle, ""), "cycle", cyclePath)
}

// Walk returns an iterator that yields manifests in processing order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[*Manifest] {
	return func(yield func(*Manifest) bool) {
		for _, path := range g.processingOrder {
			if !yield(g.manifests[path]) {
				return
			}
		}
	}
}
