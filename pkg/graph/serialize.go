package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// JSON Form - Canonical Serialization Format
// =============================================================================

// JSON is the canonical serialization format for publication graphs.
// Used for file round-trips, API responses, and caching.
//
// Edges serialize as node ID pairs rather than arena indexes, so the format
// survives re-import into a differently ordered arena.
type JSON struct {
	Nodes    []Node              `json:"nodes"`
	Edges    []EdgeJSON          `json:"edges"`
	Clusters map[string][]string `json:"clusters"`
	Topics   []string            `json:"topics,omitempty"`
}

// EdgeJSON is the boundary form of an edge, keyed by node IDs.
type EdgeJSON struct {
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	Strength      float64 `json:"strength"`
	Bidirectional bool    `json:"bidirectional"`
}

// Export converts the graph to its serialization format.
// Nodes keep arena order for round-trip fidelity.
func (g *Graph) Export() JSON {
	out := JSON{
		Nodes:    make([]Node, len(g.nodes)),
		Edges:    make([]EdgeJSON, len(g.edges)),
		Clusters: g.Clusters(),
		Topics:   g.Topics(),
	}
	for i, n := range g.nodes {
		out.Nodes[i] = *n
	}
	for i, e := range g.edges {
		src, dst := g.EndpointIDs(e)
		out.Edges[i] = EdgeJSON{Source: src, Target: dst, Strength: e.Strength, Bidirectional: e.Bidirectional}
	}
	return out
}

// FromJSON rebuilds a Graph from its serialization format.
// Returns an error if the structure violates graph constraints (duplicate
// IDs, edges referencing missing nodes, self-loops, cluster overlap).
func FromJSON(gj JSON) (*Graph, error) {
	g := New()
	for _, topic := range gj.Topics {
		g.InitCluster(topic)
	}
	for _, n := range gj.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
	}
	for _, e := range gj.Edges {
		if err := g.AddEdge(e.Source, e.Target, e.Strength); err != nil {
			return nil, fmt.Errorf("add edge %s-%s: %w", e.Source, e.Target, err)
		}
	}
	for topic, ids := range gj.Clusters {
		g.InitCluster(topic)
		for _, id := range ids {
			if err := g.AssignCluster(topic, id); err != nil {
				return nil, fmt.Errorf("cluster %s node %s: %w", topic, id, err)
			}
		}
	}
	return g, nil
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a graph to pretty-printed JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	return json.MarshalIndent(g.Export(), "", "  ")
}

// Write encodes the graph as JSON and writes it to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Export()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON graph from r.
// Returns the same constraint errors as [FromJSON] for malformed graphs.
// Read does not close r.
func Read(r io.Reader) (*Graph, error) {
	var gj JSON
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromJSON(gj)
}

// WriteFile writes a graph to a JSON file at path.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// ReadFile reads a graph from a JSON file at path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
