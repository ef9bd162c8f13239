// Package authority computes a global authority score per document by
// iterative random-walk propagation (PageRank) over the similarity graph.
// The loop is a pure fixed point: repeated application of one transition
// function over an explicit score vector indexed by a stable node-id→index
// mapping, so convergence is inspectable in isolation.
package authority

import "math"

// Scores maps document id to its authority score. Scores are non-negative
// and sum to 1 over the full node set (within floating tolerance): a
// probability distribution, not an arbitrary ranking number.
type Scores map[string]float64

// Options controls the iteration.
type Options struct {
	Damping       float64
	Tolerance     float64
	MaxIterations int
}

// DefaultOptions matches the standard PageRank parameterization.
func DefaultOptions() Options {
	return Options{Damping: 0.85, Tolerance: 1e-6, MaxIterations: 100}
}

// Result reports how the iteration terminated. Either cause is acceptable,
// not an error.
type Result struct {
	Iterations int
	Delta      float64
	Converged  bool
}

// Graph is the read-only view Compute needs; *graph.Graph satisfies it.
type Graph interface {
	Nodes() []string
	Neighbors(id string) []string
	Weight(a, b string) float64
}

type edge struct {
	to     int
	weight float64
}

// Compute runs the damped random walk until the L1 change between successive
// score vectors drops below opts.Tolerance or opts.MaxIterations is reached.
// Each node's outgoing mass is split among neighbors in proportion to edge
// weight (outgoing weights normalized to sum to 1). Dangling nodes (degree 0)
// redistribute their mass uniformly across all nodes each iteration, so total
// probability is never lost.
func Compute(g Graph, opts Options) (Scores, Result) {
	ids := g.Nodes()
	n := len(ids)
	if n == 0 {
		return Scores{}, Result{Converged: true}
	}
	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = 0.85
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = 1
	}

	idx := make(map[string]int, n)
	for i, id := range ids {
		idx[id] = i
	}

	// Outgoing edges with transition probabilities precomputed: weight over
	// the node's total outgoing weight.
	out := make([][]edge, n)
	dangling := make([]int, 0)
	for i, id := range ids {
		neighbors := g.Neighbors(id)
		if len(neighbors) == 0 {
			dangling = append(dangling, i)
			continue
		}
		outSum := 0.0
		for _, nb := range neighbors {
			outSum += g.Weight(id, nb)
		}
		edges := make([]edge, 0, len(neighbors))
		for _, nb := range neighbors {
			edges = append(edges, edge{to: idx[nb], weight: g.Weight(id, nb) / outSum})
		}
		out[i] = edges
	}

	scores := make([]float64, n)
	next := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	d := opts.Damping
	base := (1 - d) / float64(n)
	res := Result{}
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		danglingMass := 0.0
		for _, i := range dangling {
			danglingMass += scores[i]
		}
		uniform := base + d*danglingMass/float64(n)
		for i := range next {
			next[i] = uniform
		}
		// Push pass: read the previous vector, write the next one; the
		// previous vector is never mutated mid-iteration.
		for j := range out {
			if len(out[j]) == 0 {
				continue
			}
			mass := d * scores[j]
			for _, e := range out[j] {
				next[e.to] += mass * e.weight
			}
		}

		delta := 0.0
		for i := range scores {
			delta += math.Abs(next[i] - scores[i])
		}
		scores, next = next, scores

		res.Iterations = iter
		res.Delta = delta
		if delta < opts.Tolerance {
			res.Converged = true
			break
		}
	}

	result := make(Scores, n)
	for i, id := range ids {
		result[id] = scores[i]
	}
	return result, res
}
