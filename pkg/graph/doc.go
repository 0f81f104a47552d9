// Package graph provides the core data structure for research-publication
// graphs: a node arena with an ID index, inferred edges, and topical
// clusters.
//
// # Overview
//
// Pubgraph turns a flat list of publications into a weighted graph whose
// edges are inferred from shared authorship, venue, and topic. This package
// is the structural layer: it owns node and edge identity, enforces the
// graph invariants, and defines the canonical JSON wire format. Building,
// layout, and filtering live in sibling packages:
//
//   - pkg/build: publications → Graph (classification, influence, edges)
//   - pkg/layout: force-directed placement writing node coordinates
//   - pkg/filter: predicate-based subgraph derivation
//
// # Storage
//
// Nodes are stored in a dense arena ([]*Node) with a map from ID to arena
// index. Edges hold index pairs internally for cheap traversal; the public
// contract at the boundary (serialization, cluster map) is ID-based. Use
// [Graph.EndpointIDs] to resolve an edge back to node IDs.
//
// # Basic Usage
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "p1", Title: "Neural Evolution Methods", Year: "2023"})
//	g.AddNode(graph.Node{ID: "p2", Title: "Neural Plasticity Study", Year: "2022"})
//	g.AddEdge("p1", "p2", 0.33)
//	g.AssignCluster("neuroevolution", "p1")
//
// Use [Graph.Validate] to verify structural integrity: edges connect
// distinct in-arena nodes with strength in (0, 1], and the clusters
// partition the node set.
//
// # Serialization
//
// Graphs use a node-link JSON format with ID-keyed edges:
//
//	{
//	  "nodes": [{"id": "p1", ...}, {"id": "p2", ...}],
//	  "edges": [{"source": "p1", "target": "p2", "strength": 0.33, "bidirectional": true}],
//	  "clusters": {"neuroevolution": ["p1", "p2"]}
//	}
//
// Common operations:
//
//	g, _ := graph.ReadFile("graph.json")   // File → Graph
//	graph.WriteFile(g, "out.json")         // Graph → File
//	data, _ := graph.Marshal(g)            // Graph → []byte
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. The layout engine
// mutates node coordinates in place, so callers must not run layout and
// filtering concurrently on the same graph.
package graph
