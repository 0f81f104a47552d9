package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/RomainClaret/pubgraph/pkg/build"
)

// topicsCommand creates the topics command for inspecting the taxonomy.
func (c *CLI) topicsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics [topics.toml]",
		Short: "Show the topic taxonomy used for classification",
		Long: `Show the topic taxonomy used for classification.

Without arguments, prints the built-in taxonomy. With a TOML file argument,
loads and validates that file and prints it instead, exactly as 'build
--topics' would interpret it.

Topics are listed in classification priority order: a publication matching
several keyword sets is assigned to whichever topic appears first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := build.DefaultTopics
			source := "built-in"
			if len(args) == 1 {
				loaded, err := build.LoadTopics(args[0])
				if err != nil {
					return fmt.Errorf("load topics %s: %w", args[0], err)
				}
				topics = loaded
				source = args[0]
			}
			printTopics(topics, source)
			return nil
		},
	}
	return cmd
}

func printTopics(topics []build.Topic, source string) {
	fmt.Println(StyleTitle.Render("Topic Taxonomy") + " " + StyleDim.Render("("+source+")"))
	printNewline()

	for i, topic := range topics {
		swatch := lipgloss.NewStyle().Foreground(topicSwatchColor(topic.Color)).Render("■")
		keywords := strings.Join(topic.Keywords, ", ")
		if keywords == "" {
			keywords = StyleDim.Render("(catch-all)")
		}
		fmt.Printf("  %d. %s %s\n", i+1, swatch, StyleValue.Render(topic.Name))
		printDetail("%s", keywords)
	}
}

// topicSwatchColor converts an "R, G, B" triple into a lipgloss hex color.
// Unparsable triples fall back to the muted gray used for secondary text.
func topicSwatchColor(rgb string) lipgloss.Color {
	var r, g, b int
	if _, err := fmt.Sscanf(rgb, "%d, %d, %d", &r, &g, &b); err != nil {
		return colorGray
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}
