// Package layout computes 2D positions for publication graphs using a
// force-directed simulation.
//
// The simulation always runs a fixed iteration count with no convergence
// test, trading layout quality for bounded, predictable latency - it runs
// synchronously in front of a caller that is waiting for coordinates. Four
// forces act on every node each step: a pull toward the canvas center,
// inverse-square repulsion from every other node, spring attraction along
// edges scaled by edge strength, and cohesion toward the centroid of the
// node's cluster. The net force is applied as an overdamped Euler step (no
// velocity state is carried between iterations) and positions are clamped
// inside a fixed canvas margin.
//
// Initial placement is random; inject a Seed for reproducible layouts. The
// repulsion pass is O(n² × iterations) with no spatial indexing, which is
// fine at publication-list scale.
package layout

import (
	"math"
	"math/rand"
	"time"

	"github.com/RomainClaret/pubgraph/pkg/graph"
)

// Simulation constants. These are tuned as a set: changing one shifts the
// equilibrium the others balance around.
const (
	centerStrength     = 0.01
	repulsionStrength  = 5000.0
	attractionStrength = 0.1
	cohesionStrength   = 0.05
	damping            = 0.85
)

// Margin is the fixed distance in pixels kept between node centers and the
// canvas edge. It does not account for node radius, so large nodes may still
// overlap the boundary visually.
const Margin = 50.0

// DefaultIterations is the simulation step count when Options.Iterations
// is zero.
const DefaultIterations = 100

// Options configures a layout run.
type Options struct {
	// Width and Height are the canvas dimensions in pixels.
	Width  float64
	Height float64

	// Iterations is the fixed simulation step count. Zero means
	// DefaultIterations.
	Iterations int

	// Seed initializes the RNG used for initial node placement. Zero means
	// time-seeded: repeated runs then produce different layouts, matching
	// interactive use. Set a non-zero seed for reproducible output.
	Seed uint64
}

// Run overwrites every node's coordinates in place. Edges and clusters are
// left untouched. A graph with no nodes is a no-op.
func Run(g *graph.Graph, opts Options) {
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	seed := int64(opts.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	nodes := g.Nodes()
	for _, n := range nodes {
		n.X = rng.Float64() * opts.Width
		n.Y = rng.Float64() * opts.Height
	}

	adjacency := buildAdjacency(g, len(nodes))
	clustermates := buildClustermates(g, nodes)
	centerX, centerY := opts.Width/2, opts.Height/2

	fx := make([]float64, len(nodes))
	fy := make([]float64, len(nodes))

	for step := 0; step < iterations; step++ {
		for i, n := range nodes {
			var forceX, forceY float64

			// Center pull keeps the whole graph from drifting off-canvas.
			forceX += (centerX - n.X) * centerStrength
			forceY += (centerY - n.Y) * centerStrength

			// Pairwise inverse-square repulsion.
			for j, m := range nodes {
				if i == j {
					continue
				}
				dx, dy := n.X-m.X, n.Y-m.Y
				dist := math.Hypot(dx, dy)
				if dist == 0 {
					dist = 1
				}
				force := repulsionStrength / (dist * dist)
				forceX += (dx / dist) * force
				forceY += (dy / dist) * force
			}

			// Spring attraction along edges, scaled by edge strength.
			// distance * (delta/distance) collapses to the raw delta.
			for _, e := range adjacency[i] {
				other := nodes[e.other]
				forceX += (other.X - n.X) * attractionStrength * e.strength
				forceY += (other.Y - n.Y) * attractionStrength * e.strength
			}

			// Cohesion toward the centroid of the node's clustermates.
			if mates := clustermates[i]; len(mates) > 0 {
				var cx, cy float64
				for _, j := range mates {
					cx += nodes[j].X
					cy += nodes[j].Y
				}
				cx /= float64(len(mates))
				cy /= float64(len(mates))
				forceX += (cx - n.X) * cohesionStrength
				forceY += (cy - n.Y) * cohesionStrength
			}

			fx[i], fy[i] = forceX, forceY
		}

		for i, n := range nodes {
			n.X = clamp(n.X+fx[i]*damping, Margin, opts.Width-Margin)
			n.Y = clamp(n.Y+fy[i]*damping, Margin, opts.Height-Margin)
		}
	}
}

type halfEdge struct {
	other    int
	strength float64
}

// buildAdjacency indexes edges by endpoint. Every edge is bidirectional, so
// it contributes a pull at both ends.
func buildAdjacency(g *graph.Graph, n int) [][]halfEdge {
	adjacency := make([][]halfEdge, n)
	for _, e := range g.Edges() {
		adjacency[e.Source] = append(adjacency[e.Source], halfEdge{other: e.Target, strength: e.Strength})
		adjacency[e.Target] = append(adjacency[e.Target], halfEdge{other: e.Source, strength: e.Strength})
	}
	return adjacency
}

// buildClustermates maps each arena index to the indexes of the other nodes
// in its cluster.
func buildClustermates(g *graph.Graph, nodes []*graph.Node) [][]int {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	mates := make([][]int, len(nodes))
	for _, topic := range g.Topics() {
		ids := g.Cluster(topic)
		for _, id := range ids {
			i := index[id]
			for _, otherID := range ids {
				if otherID == id {
					continue
				}
				mates[i] = append(mates[i], index[otherID])
			}
		}
	}
	return mates
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
