// Package graph defines the document-similarity graph artifact: an undirected
// weighted graph whose node set is exactly the corpus's document ids. Edge
// weights are Jaccard coefficients in [0,1]. The graph is built once per
// corpus snapshot and is immutable while serving.
package graph

import "sort"

// Graph is an undirected weighted graph over document ids. Isolated nodes are
// valid: every corpus document is a node even with no edges. At most one edge
// exists per unordered pair, stored symmetrically; self-edges are rejected.
type Graph struct {
	NodeIDs []string
	Adj     map[string]map[string]float64
}

// New creates a graph whose node set is the given document ids.
func New(nodeIDs []string) *Graph {
	g := &Graph{
		NodeIDs: make([]string, len(nodeIDs)),
		Adj:     make(map[string]map[string]float64, len(nodeIDs)),
	}
	copy(g.NodeIDs, nodeIDs)
	for _, id := range g.NodeIDs {
		g.Adj[id] = make(map[string]float64)
	}
	return g
}

// AddEdge stores the undirected edge (a, b) with the given weight. Self-edges
// and edges touching unknown nodes are ignored.
func (g *Graph) AddEdge(a, b string, weight float64) {
	if a == b {
		return
	}
	if _, ok := g.Adj[a]; !ok {
		return
	}
	if _, ok := g.Adj[b]; !ok {
		return
	}
	g.Adj[a][b] = weight
	g.Adj[b][a] = weight
}

// Nodes returns the node ids in their stable artifact order.
func (g *Graph) Nodes() []string {
	return g.NodeIDs
}

// HasNode reports whether id is part of the node set.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Adj[id]
	return ok
}

// HasEdge reports whether the unordered pair (a, b) is connected.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.Adj[a][b]
	return ok
}

// Weight returns the edge weight for (a, b), 0 if the pair is not connected.
func (g *Graph) Weight(a, b string) float64 {
	return g.Adj[a][b]
}

// Neighbors returns the ids adjacent to the given node in lexicographic
// order, for deterministic iteration.
func (g *Graph) Neighbors(id string) []string {
	adj := g.Adj[id]
	if len(adj) == 0 {
		return nil
	}
	neighbors := make([]string, 0, len(adj))
	for n := range adj {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

// Degree returns the number of edges incident to the node.
func (g *Graph) Degree(id string) int {
	return len(g.Adj[id])
}

// WeightedDegree returns the sum of edge weights incident to the node.
func (g *Graph) WeightedDegree(id string) float64 {
	sum := 0.0
	for _, w := range g.Adj[id] {
		sum += w
	}
	return sum
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int {
	return len(g.NodeIDs)
}

// NumEdges returns the undirected edge count.
func (g *Graph) NumEdges() int {
	total := 0
	for _, adj := range g.Adj {
		total += len(adj)
	}
	return total / 2
}

// Density returns 2E / (N * (N-1)), the fraction of possible edges present.
func (g *Graph) Density() float64 {
	n := g.NumNodes()
	if n < 2 {
		return 0
	}
	return float64(2*g.NumEdges()) / float64(n*(n-1))
}
