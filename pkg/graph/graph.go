package graph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the source
	// node does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the target
	// node does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when source and target are
	// the same node. Edges are inferred relationships between distinct
	// publications; self-loops are never meaningful.
	ErrSelfLoop = errors.New("edge source and target must differ")

	// ErrInvalidStrength is returned by [Graph.AddEdge] when the edge
	// strength is outside (0, 1].
	ErrInvalidStrength = errors.New("edge strength must be in (0, 1]")

	// ErrUnknownClusterNode is returned by [Graph.AssignCluster] when the
	// node ID does not exist in the graph.
	ErrUnknownClusterNode = errors.New("cluster references unknown node")

	// ErrClusterOverlap is returned by [Graph.AssignCluster] when the node
	// has already been assigned to a cluster. Every node belongs to exactly
	// one cluster.
	ErrClusterOverlap = errors.New("node already assigned to a cluster")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references an index outside the node arena. This indicates corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrUnclusteredNode is returned by [Graph.Validate] when a node does
	// not appear in any cluster. Cluster lists must partition the node set.
	ErrUnclusteredNode = errors.New("node missing from cluster partition")
)

// Node represents one publication or static paper in the graph.
//
// Radius, Color, and Influence are derived once at build time and never
// change afterward. X and Y start at 0,0 and are written only by the layout
// engine. The zero value is not usable - ID must be set before adding to a
// Graph.
type Node struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	Year      string   `json:"year"`
	Venue     string   `json:"venue,omitempty"`
	Citations int      `json:"citations,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
	PDFURL    string   `json:"pdf_url,omitempty"`

	// Topic is the cluster this node was assigned at build time.
	Topic string `json:"topic"`

	// Spatial coordinates, written in place by the layout engine.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Visual weight derived from influence: 20 + influence*30.
	Radius float64 `json:"radius"`

	// Color is an "R, G, B" triple determined by the node's cluster.
	Color string `json:"color"`

	// Influence blends citation count and recency into [0, 1].
	Influence float64 `json:"influence"`
}

// Edge is an inferred relationship between two nodes. Source and Target are
// indexes into the graph's node arena; use [Graph.EndpointIDs] to resolve
// them back to node IDs at the boundary.
//
// Edges are always bidirectional: no directed citation data exists, only
// co-authorship, venue, and topic inference.
type Edge struct {
	Source        int
	Target        int
	Strength      float64
	Bidirectional bool
}

// Graph holds the full publication graph: a dense node arena with an
// ID index, inferred edges as index pairs, and topical clusters.
//
// The zero value is not usable - use New to create a Graph. Graph is not
// safe for concurrent use; in particular the layout engine mutates node
// coordinates in place.
type Graph struct {
	nodes    []*Node
	index    map[string]int
	edges    []Edge
	clusters map[string][]string
	topics   []string // cluster keys in declaration order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		clusters: make(map[string][]string),
	}
}

// AddNode copies n into the arena and indexes it by ID.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the ID
// is already present.
func (g *Graph) AddNode(n Node) error {
	return g.AddNodeRef(&n)
}

// AddNodeRef adds an existing node object to the arena without copying.
// The graph takes the pointer as-is; callers deriving subgraphs use this to
// share node identity with the source graph.
func (g *Graph) AddNodeRef(n *Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge adds a bidirectional edge between two existing nodes.
// The endpoints must be distinct and the strength in (0, 1].
func (g *Graph) AddEdge(sourceID, targetID string, strength float64) error {
	src, ok := g.index[sourceID]
	if !ok {
		return ErrUnknownSourceNode
	}
	dst, ok := g.index[targetID]
	if !ok {
		return ErrUnknownTargetNode
	}
	if src == dst {
		return ErrSelfLoop
	}
	if strength <= 0 || strength > 1 {
		return ErrInvalidStrength
	}
	g.edges = append(g.edges, Edge{Source: src, Target: dst, Strength: strength, Bidirectional: true})
	return nil
}

// InitCluster registers an empty cluster for the topic if not already
// present. The builder pre-initializes every known topic so callers can
// iterate all topic keys even on an empty graph.
func (g *Graph) InitCluster(topic string) {
	if _, ok := g.clusters[topic]; ok {
		return
	}
	g.clusters[topic] = []string{}
	g.topics = append(g.topics, topic)
}

// AssignCluster appends the node ID to the topic's cluster, creating the
// cluster if needed. Returns ErrUnknownClusterNode if the ID is not in the
// graph, or ErrClusterOverlap if the node is already clustered elsewhere.
func (g *Graph) AssignCluster(topic, id string) error {
	if _, ok := g.index[id]; !ok {
		return ErrUnknownClusterNode
	}
	for _, ids := range g.clusters {
		if slices.Contains(ids, id) {
			return ErrClusterOverlap
		}
	}
	g.InitCluster(topic)
	g.clusters[topic] = append(g.clusters[topic], id)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The pointer refers to the actual node in the arena, so coordinate
// mutations are visible to all holders of the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// NodeAt returns the node at the given arena index.
// The index must be in [0, NodeCount).
func (g *Graph) NodeAt(i int) *Node { return g.nodes[i] }

// Nodes returns the node arena in insertion order.
// The slice is a copy but the pointers refer to the actual nodes.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EndpointIDs resolves an edge's arena indexes to node IDs.
func (g *Graph) EndpointIDs(e Edge) (sourceID, targetID string) {
	return g.nodes[e.Source].ID, g.nodes[e.Target].ID
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Cluster returns the node IDs assigned to the topic.
// Returns nil for an unknown topic. The returned slice should not be
// modified - use it as a read-only view.
func (g *Graph) Cluster(topic string) []string { return g.clusters[topic] }

// Clusters returns a copy of the cluster map.
// The ID slices are shared with the graph and must not be modified.
func (g *Graph) Clusters() map[string][]string {
	return maps.Clone(g.clusters)
}

// Topics returns the cluster keys in declaration order. The order matches
// the topic taxonomy the graph was built with, which is load-bearing for
// first-match classification.
func (g *Graph) Topics() []string { return slices.Clone(g.topics) }

// Validate checks graph integrity and returns nil if valid.
// It verifies that every edge references nodes inside the arena with no
// self-loops and an in-range strength, and that the clusters partition the
// node set (every node in exactly one cluster).
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if e.Source < 0 || e.Source >= len(g.nodes) || e.Target < 0 || e.Target >= len(g.nodes) {
			return ErrInvalidEdgeEndpoint
		}
		if e.Source == e.Target {
			return ErrSelfLoop
		}
		if e.Strength <= 0 || e.Strength > 1 {
			return ErrInvalidStrength
		}
	}

	seen := make(map[string]bool, len(g.nodes))
	for _, ids := range g.clusters {
		for _, id := range ids {
			if _, ok := g.index[id]; !ok {
				return ErrUnknownClusterNode
			}
			if seen[id] {
				return ErrClusterOverlap
			}
			seen[id] = true
		}
	}
	for _, n := range g.nodes {
		if !seen[n.ID] {
			return ErrUnclusteredNode
		}
	}
	return nil
}
