// Package build converts publication records into a weighted research graph.
//
// The builder performs three passes: classify every record into a topical
// cluster (first-match over an ordered taxonomy, see [DetectArea]), derive
// per-node visual weight from an influence score, and synthesize edges from
// author, venue, and topic overlap. No citation-link data exists for these
// records, so all edges are heuristic inferences.
package build

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RomainClaret/pubgraph/pkg/graph"
)

// Influence score weights. The connection component is a constant placeholder
// rather than a function of actual edge count - an intentional simplification
// kept from the original scoring model.
const (
	citationWeight   = 0.5
	recencyWeight    = 0.3
	connectionWeight = 0.2
	connectionScore  = 0.5

	citationCeiling = 100 // citations at or above this saturate the score
	recencyWindow   = 20  // years until recency decays to zero
)

// Node radius is derived from influence: baseRadius + influence*radiusRange.
const (
	baseRadius  = 20.0
	radiusRange = 30.0
)

// Edge synthesis strengths for the venue and topic heuristics.
// Author overlap scales with the match count instead: min(1, matches/3).
const (
	venueStrength      = 0.3
	topicStrength      = 0.2
	authorMatchDivisor = 3.0
)

// Options configures graph building.
type Options struct {
	// Topics is the classification taxonomy in priority order.
	// Nil means DefaultTopics.
	Topics []Topic

	// Now anchors the recency component of the influence score.
	// The zero value means time.Now(); tests pin it for determinism.
	Now time.Time
}

// Build converts publications and static papers into a fully populated
// graph: one node per record, a cluster assignment for every node, and
// heuristic edges between related pairs.
//
// Both inputs may be empty; the result then has zero nodes and edges but
// still carries an empty cluster for every topic in the taxonomy, so callers
// can iterate all topic keys unconditionally.
func Build(pubs []Publication, papers []StaticPaper, opts Options) (*graph.Graph, error) {
	topics := opts.Topics
	if topics == nil {
		topics = DefaultTopics
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	currentYear := now.Year()

	g := graph.New()
	for _, t := range topics {
		g.InitCluster(t.Name)
	}

	for _, p := range pubs {
		n := newNode(p.ID, p.Title, p.Authors, p.Year, p.Venue, p.Citations, p.Abstract, topics, currentYear)
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("publication %s: %w", p.ID, err)
		}
		if err := g.AssignCluster(n.Topic, n.ID); err != nil {
			return nil, fmt.Errorf("cluster publication %s: %w", p.ID, err)
		}
	}

	for i, p := range papers {
		id := fmt.Sprintf("static-%d", i)
		n := newNode(id, p.Title, nil, p.year(currentYear), "", 0, p.Subtitle, topics, currentYear)
		n.PDFURL = p.pdfURL()
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("paper %s: %w", id, err)
		}
		if err := g.AssignCluster(n.Topic, n.ID); err != nil {
			return nil, fmt.Errorf("cluster paper %s: %w", id, err)
		}
	}

	synthesizeEdges(g, topics)
	return g, nil
}

// newNode populates a node with its derived fields: topic, influence,
// radius, and cluster color.
func newNode(id, title string, authors []string, year, venue string, citations int, abstract string, topics []Topic, currentYear int) graph.Node {
	topic := DetectArea(topics, title, abstract, venue)
	influence := influence(citations, year, currentYear)
	return graph.Node{
		ID:        id,
		Title:     title,
		Authors:   authors,
		Year:      year,
		Venue:     venue,
		Citations: citations,
		Abstract:  abstract,
		Topic:     topic,
		Radius:    baseRadius + influence*radiusRange,
		Color:     topicColor(topics, topic),
		Influence: influence,
	}
}

// influence blends citation count and recency into [0, 1].
func influence(citations int, year string, currentYear int) float64 {
	citationScore := min(1.0, float64(citations)/citationCeiling)

	recencyScore := 0.0
	if y, err := strconv.Atoi(year); err == nil {
		recencyScore = max(0.0, 1.0-float64(currentYear-y)/recencyWindow)
	}

	return citationWeight*citationScore + recencyWeight*recencyScore + connectionWeight*connectionScore
}

// synthesizeEdges creates at most one edge per unordered node pair, testing
// the heuristics in priority order: shared authors, then shared venue, then
// shared topic. The pass is O(n²) over the node set, which is fine at
// publication-list scale (tens of nodes, not thousands).
func synthesizeEdges(g *graph.Graph, topics []Topic) {
	catchAll := catchAllName(topics)
	nodes := g.Nodes()

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]

			if matches := sharedAuthors(a.Authors, b.Authors); matches > 0 {
				g.AddEdge(a.ID, b.ID, min(1.0, float64(matches)/authorMatchDivisor))
				continue
			}
			if a.Venue != "" && a.Venue == b.Venue {
				g.AddEdge(a.ID, b.ID, venueStrength)
				continue
			}
			if a.Topic == b.Topic && a.Topic != catchAll {
				g.AddEdge(a.ID, b.ID, topicStrength)
			}
		}
	}
}

// sharedAuthors counts authors of a that plausibly appear in b. Author
// strings are free-form, so the comparison matches last-name tokens as
// case-insensitive substrings in either direction ("A Smith" matches
// "Alice Smith" and vice versa). Each author of a counts at most once.
func sharedAuthors(a, b []string) int {
	count := 0
	for _, x := range a {
		lx := strings.ToLower(x)
		lastX := lastName(lx)
		if lastX == "" {
			continue
		}
		for _, y := range b {
			ly := strings.ToLower(y)
			lastY := lastName(ly)
			if lastY == "" {
				continue
			}
			if strings.Contains(ly, lastX) || strings.Contains(lx, lastY) {
				count++
				break
			}
		}
	}
	return count
}

// lastName returns the final whitespace-separated token of a name.
func lastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}

func catchAllName(topics []Topic) string {
	for _, t := range topics {
		if len(t.Keywords) == 0 {
			return t.Name
		}
	}
	return CatchAllTopic
}
