// Package filter derives reduced publication graphs from a caller-supplied
// predicate set. Filtering never mutates or clones nodes: the output graph
// holds references to the same node objects as the source, so coordinates
// computed by the layout engine stay valid across re-filters.
package filter

import (
	"errors"
	"strconv"
	"strings"

	"github.com/RomainClaret/pubgraph/pkg/graph"
)

// ===== Errors =====

var (
	// ErrInvalidYearRange is returned when the lower year bound exceeds the
	// upper bound.
	ErrInvalidYearRange = errors.New("filter: year range minimum exceeds maximum")

	// ErrNegativeCitationFloor is returned for a citation floor below zero.
	ErrNegativeCitationFloor = errors.New("filter: citation floor is negative")
)

// ===== Categories =====

// Category is the publication category derived from a node's title.
type Category string

const (
	CategoryThesis Category = "thesis"
	CategoryPoster Category = "poster"
	CategoryPaper  Category = "paper"
)

// Categorize derives the category from a title. The checks are ordered and
// mutually exclusive: a title mentioning both "thesis" and "poster" is a
// thesis.
func Categorize(title string) Category {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "thesis"):
		return CategoryThesis
	case strings.Contains(lower, "poster"):
		return CategoryPoster
	default:
		return CategoryPaper
	}
}

// ===== Spec =====

// Spec holds the predicate set applied by Apply. A node survives only when
// it passes every predicate.
type Spec struct {
	// YearMin and YearMax bound the publication year, both inclusive.
	YearMin int `json:"year_min"`
	YearMax int `json:"year_max"`

	// MinCitations is the inclusive citation floor.
	MinCitations int `json:"min_citations"`

	// Query is matched case-insensitively against node titles. The empty
	// string matches everything.
	Query string `json:"query"`

	// Category toggles. A node is exactly one of the three.
	ShowTheses  bool `json:"show_theses"`
	ShowPapers  bool `json:"show_papers"`
	ShowPosters bool `json:"show_posters"`
}

// Everything returns a spec that keeps every node.
func Everything() Spec {
	return Spec{
		YearMin:     0,
		YearMax:     9999,
		ShowTheses:  true,
		ShowPapers:  true,
		ShowPosters: true,
	}
}

func (s Spec) validate() error {
	if s.YearMin > s.YearMax {
		return ErrInvalidYearRange
	}
	if s.MinCitations < 0 {
		return ErrNegativeCitationFloor
	}
	return nil
}

// matches reports whether a node passes all predicates.
func (s Spec) matches(n *graph.Node) bool {
	if year, err := strconv.Atoi(strings.TrimSpace(n.Year)); err == nil {
		if year < s.YearMin || year > s.YearMax {
			return false
		}
	}
	if n.Citations < s.MinCitations {
		return false
	}
	if s.Query != "" && !strings.Contains(strings.ToLower(n.Title), strings.ToLower(s.Query)) {
		return false
	}
	switch Categorize(n.Title) {
	case CategoryThesis:
		return s.ShowTheses
	case CategoryPoster:
		return s.ShowPosters
	default:
		return s.ShowPapers
	}
}

// ===== Apply =====

// Apply builds a new graph containing the nodes of g that pass every
// predicate in spec, the edges whose endpoints both survived, and the
// non-empty clusters restricted to surviving ids. Node objects are shared
// with g, never copied.
func Apply(g *graph.Graph, spec Spec) (*graph.Graph, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	out := graph.New()
	for _, n := range g.Nodes() {
		if !spec.matches(n) {
			continue
		}
		if err := out.AddNodeRef(n); err != nil {
			return nil, err
		}
	}

	for _, e := range g.Edges() {
		sourceID, targetID := g.EndpointIDs(e)
		if _, ok := out.Node(sourceID); !ok {
			continue
		}
		if _, ok := out.Node(targetID); !ok {
			continue
		}
		if err := out.AddEdge(sourceID, targetID, e.Strength); err != nil {
			return nil, err
		}
	}

	// Clusters keep the source topic order but empty ones are dropped.
	for _, topic := range g.Topics() {
		for _, id := range g.Cluster(topic) {
			if _, ok := out.Node(id); !ok {
				continue
			}
			if err := out.AssignCluster(topic, id); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
