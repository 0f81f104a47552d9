package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RomainClaret/pubgraph/pkg/filter"
	"github.com/RomainClaret/pubgraph/pkg/graph"
)

// filterCommand creates the filter command for reducing graphs.
func (c *CLI) filterCommand() *cobra.Command {
	var (
		output      string
		hideTheses  bool
		hidePapers  bool
		hidePosters bool
	)
	spec := filter.Everything()

	cmd := &cobra.Command{
		Use:   "filter [graph.json]",
		Short: "Reduce a publication graph to nodes matching predicates",
		Long: `Reduce a publication graph to nodes matching predicates.

A node survives only when it passes every active predicate: publication year
within --year-min/--year-max, citations at or above --min-citations, title
containing --query (case-insensitive), and its category not hidden. Edges
survive only when both endpoints do; clusters that end up empty are dropped.

Categories are derived from the title: "thesis" wins over "poster", and
everything else is a paper.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.ShowTheses = !hideTheses
			spec.ShowPapers = !hidePapers
			spec.ShowPosters = !hidePosters
			return c.runFilter(args[0], spec, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.filtered.json)")
	cmd.Flags().IntVar(&spec.YearMin, "year-min", spec.YearMin, "earliest publication year (inclusive)")
	cmd.Flags().IntVar(&spec.YearMax, "year-max", spec.YearMax, "latest publication year (inclusive)")
	cmd.Flags().IntVar(&spec.MinCitations, "min-citations", spec.MinCitations, "citation floor (inclusive)")
	cmd.Flags().StringVarP(&spec.Query, "query", "q", "", "title substring to match")
	cmd.Flags().BoolVar(&hideTheses, "hide-theses", false, "drop thesis nodes")
	cmd.Flags().BoolVar(&hidePapers, "hide-papers", false, "drop paper nodes")
	cmd.Flags().BoolVar(&hidePosters, "hide-posters", false, "drop poster nodes")

	return cmd
}

// runFilter loads the graph, applies the predicate set, and writes output.
func (c *CLI) runFilter(input string, spec filter.Spec, output string) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	p := newProgress(c.Logger)
	out, err := filter.Apply(g, spec)
	if err != nil {
		return fmt.Errorf("apply filter: %w", err)
	}
	p.done(fmt.Sprintf("Filtered %d of %d nodes", out.NodeCount(), g.NodeCount()))

	path := outputPath(output, input, ".filtered.json")
	if err := graph.WriteFile(out, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Filter applied")
	printFile(path)
	printStats(out.NodeCount(), out.EdgeCount(), false)
	if dropped := g.NodeCount() - out.NodeCount(); dropped > 0 {
		printDetail("%d nodes dropped", dropped)
	}
	printNewline()
	printNextStep("Render", "pubgraph render "+path)

	return nil
}
