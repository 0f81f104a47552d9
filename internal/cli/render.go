package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RomainClaret/pubgraph/pkg/graph"
	"github.com/RomainClaret/pubgraph/pkg/pipeline"
)

// renderCommand creates the render command for exporting graph artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats  string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Export a laid-out publication graph to output formats",
		Long: `Export a laid-out publication graph to output formats.

Supported formats are 'json' (the canonical graph document) and 'dot'
(Graphviz, undirected, with pinned node positions for neato). Multiple
formats can be requested at once with a comma-separated list.

With --detailed, DOT node labels include the publication year, venue, and
citation count.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], parseFormats(formats), output, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&formats, "formats", "f", pipeline.FormatJSON, "output formats (comma-separated: json,dot)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include year, venue, and citations in DOT labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the graph, exports the requested formats, and writes one
// file per format.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string, detailed, noCache bool) error {
	g, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Formats: formats, Detailed: detailed, Logger: c.Logger}

	spinner := newSpinnerWithContext(ctx, "Exporting artifacts...")
	spinner.Start()

	artifacts, cacheHit, err := runner.ExportWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return fmt.Errorf("export graph: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	printSuccess("Artifacts exported")
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write artifact %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Explore", "pubgraph explore "+input)

	return nil
}
