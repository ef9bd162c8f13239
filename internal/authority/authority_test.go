package authority

import (
	"math"
	"testing"

	"github.com/gutensearch/gutensearch/graph"
)

func scoreSum(scores Scores) float64 {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum
}

func TestComputeEmptyGraph(t *testing.T) {
	scores, res := Compute(graph.New(nil), DefaultOptions())
	if len(scores) != 0 {
		t.Errorf("scores = %v, want empty", scores)
	}
	if !res.Converged {
		t.Error("empty graph should report converged")
	}
}

func TestComputeSingleNode(t *testing.T) {
	scores, _ := Compute(graph.New([]string{"a"}), DefaultOptions())
	if math.Abs(scores["a"]-1.0) > 1e-9 {
		t.Errorf("scores[a] = %g, want 1", scores["a"])
	}
}

func TestComputeScoresSumToOne(t *testing.T) {
	g := graph.New([]string{"a", "b", "c", "d", "e"})
	g.AddEdge("a", "b", 0.5)
	g.AddEdge("b", "c", 0.3)
	g.AddEdge("c", "a", 0.2)
	// d and e are dangling.

	scores, _ := Compute(g, DefaultOptions())
	if sum := scoreSum(scores); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("scores sum to %g, want 1", sum)
	}
	for id, s := range scores {
		if s < 0 {
			t.Errorf("scores[%s] = %g, want non-negative", id, s)
		}
	}
}

func TestComputeSymmetricStructure(t *testing.T) {
	// b and c are structurally identical relative to a, so their scores match.
	g := graph.New([]string{"a", "b", "c"})
	g.AddEdge("a", "b", 0.4)
	g.AddEdge("a", "c", 0.4)

	scores, _ := Compute(g, DefaultOptions())
	if math.Abs(scores["b"]-scores["c"]) > 1e-9 {
		t.Errorf("symmetric nodes scored differently: b=%g c=%g", scores["b"], scores["c"])
	}
	if scores["a"] <= scores["b"] {
		t.Errorf("hub should outrank leaves: a=%g b=%g", scores["a"], scores["b"])
	}
}

func TestComputeIsolatedNodeKeepsPositiveScore(t *testing.T) {
	g := graph.New([]string{"a", "b", "isolated"})
	g.AddEdge("a", "b", 0.9)

	scores, _ := Compute(g, DefaultOptions())
	if scores["isolated"] <= 0 {
		t.Errorf("scores[isolated] = %g, want > 0", scores["isolated"])
	}
	if sum := scoreSum(scores); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("scores sum to %g, want 1", sum)
	}
}

func TestComputeWeightsSteerMass(t *testing.T) {
	// b receives most of a's mass, c only a sliver, so b must outrank c.
	g := graph.New([]string{"a", "b", "c"})
	g.AddEdge("a", "b", 0.9)
	g.AddEdge("a", "c", 0.1)

	scores, _ := Compute(g, DefaultOptions())
	if scores["b"] <= scores["c"] {
		t.Errorf("heavier edge should attract more mass: b=%g c=%g", scores["b"], scores["c"])
	}
}

func TestComputeConvergenceReporting(t *testing.T) {
	g := graph.New([]string{"a", "b"})
	g.AddEdge("a", "b", 1.0)

	scores, res := Compute(g, DefaultOptions())
	if !res.Converged {
		t.Errorf("expected convergence, stopped after %d iterations with delta %g", res.Iterations, res.Delta)
	}
	if res.Iterations < 1 || res.Iterations > DefaultOptions().MaxIterations {
		t.Errorf("Iterations = %d, outside [1, %d]", res.Iterations, DefaultOptions().MaxIterations)
	}
	if math.Abs(scoreSum(scores)-1.0) > 1e-9 {
		t.Errorf("scores sum to %g, want 1", scoreSum(scores))
	}
}

func TestComputeIterationCap(t *testing.T) {
	g := graph.New([]string{"a", "b", "c"})
	g.AddEdge("a", "b", 0.5)
	g.AddEdge("b", "c", 0.5)

	opts := Options{Damping: 0.85, Tolerance: 0, MaxIterations: 3}
	_, res := Compute(g, opts)
	if res.Converged {
		t.Error("zero tolerance should never converge")
	}
	if res.Iterations != 3 {
		t.Errorf("Iterations = %d, want 3", res.Iterations)
	}
}

func TestComputeDeterministic(t *testing.T) {
	g := graph.New([]string{"a", "b", "c", "d"})
	g.AddEdge("a", "b", 0.3)
	g.AddEdge("b", "c", 0.6)
	g.AddEdge("c", "d", 0.2)
	g.AddEdge("d", "a", 0.8)

	first, _ := Compute(g, DefaultOptions())
	for i := 0; i < 5; i++ {
		again, _ := Compute(g, DefaultOptions())
		for id := range first {
			if first[id] != again[id] {
				t.Fatalf("run %d: scores[%s] = %g, want %g", i, id, again[id], first[id])
			}
		}
	}
}
