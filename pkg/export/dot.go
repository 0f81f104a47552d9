// Package export emits publication graphs in interchange formats for
// external tooling. The JSON wire format lives in [pkg/graph]; this package
// covers the Graphviz DOT text form.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/RomainClaret/pubgraph/pkg/graph"
)

// Options configures DOT emission.
type Options struct {
	// Detailed includes year, venue and citation counts in node labels.
	// When false, only the title is shown.
	Detailed bool

	// Positions pins nodes to their layout coordinates. Only useful after
	// the layout engine has run; neato honors the pins with -n.
	Positions bool
}

// ToDOT converts a publication graph to Graphviz DOT format. Edges are
// bidirectional, so the output is an undirected graph with edge penwidth
// scaled by relationship strength and node fill taken from the cluster
// color.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := nodeAttrs(n, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		sourceID, targetID := g.EndpointIDs(e)
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=%.2f];\n", sourceID, targetID, penwidth(e.Strength))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}
	if hex, ok := rgbToHex(n.Color); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", hex))
	}
	if n.Radius > 0 {
		// DOT sizes are in inches, layout radii in pixels at 72 dpi.
		attrs = append(attrs, fmt.Sprintf("width=%.2f", n.Radius/72*2))
	}
	if opts.Positions {
		attrs = append(attrs, fmt.Sprintf("pos=\"%.1f,%.1f!\"", n.X, n.Y))
	}
	return attrs
}

func nodeLabel(n *graph.Node, detailed bool) string {
	if !detailed {
		return n.Title
	}
	parts := []string{n.Title, n.Year}
	if n.Venue != "" {
		parts = append(parts, n.Venue)
	}
	if n.Citations > 0 {
		parts = append(parts, fmt.Sprintf("%d citations", n.Citations))
	}
	return strings.Join(parts, "\n")
}

// penwidth maps edge strength (0, 1] onto a visible stroke range.
func penwidth(strength float64) float64 {
	return 1 + strength*2
}

// rgbToHex parses the "r, g, b" component form carried on nodes into a
// "#rrggbb" Graphviz color.
func rgbToHex(color string) (string, bool) {
	parts := strings.Split(color, ",")
	if len(parts) != 3 {
		return "", false
	}
	var rgb [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return "", false
		}
		rgb[i] = v
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), true
}
