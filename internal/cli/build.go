package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RomainClaret/pubgraph/pkg/build"
	"github.com/RomainClaret/pubgraph/pkg/graph"
	"github.com/RomainClaret/pubgraph/pkg/pipeline"
)

// buildCommand creates the build command for constructing publication graphs.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		papersFile string
		topicsFile string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "build [publications.json]",
		Short: "Build a publication graph from exported records",
		Long: `Build a publication graph from exported records.

The build command reads a JSON array of publication records, classifies each
into a topical cluster, scores its influence, and synthesizes relationship
edges for shared authors, venues, and topics. The output is a graph.json
file consumed by 'layout', 'filter', 'render', and 'explore'.

Static paper records (from a portfolio export) can be merged in with
--papers. A custom topic taxonomy can be supplied with --topics; the file
order defines classification priority.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], papersFile, topicsFile, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&papersFile, "papers", "", "static paper records to merge in (JSON)")
	cmd.Flags().StringVar(&topicsFile, "topics", "", "topic taxonomy file (TOML, ordered)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild even if a cached graph exists")

	return cmd
}

// runBuild loads the input records, builds the graph, and writes output.
func (c *CLI) runBuild(ctx context.Context, input, papersFile, topicsFile, output string, noCache, refresh bool) error {
	opts := pipeline.Options{Refresh: refresh, Logger: c.Logger}

	pubs, err := build.ReadPublicationsFile(input)
	if err != nil {
		return fmt.Errorf("load publications %s: %w", input, err)
	}
	opts.Publications = pubs

	if papersFile != "" {
		papers, err := build.ReadPapersFile(papersFile)
		if err != nil {
			return fmt.Errorf("load papers %s: %w", papersFile, err)
		}
		opts.Papers = papers
	}

	if topicsFile != "" {
		topics, err := build.LoadTopics(topicsFile)
		if err != nil {
			return fmt.Errorf("load topics %s: %w", topicsFile, err)
		}
		opts.Topics = topics
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()

	g, cacheHit, err := runner.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return fmt.Errorf("build graph: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := outputPath(output, input, ".graph.json")
	if err := graph.WriteFile(g, out); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Graph built")
	printFile(out)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Layout", "pubgraph layout "+out)

	return nil
}
