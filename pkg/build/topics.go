package build

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Topic defines one research area in the classification taxonomy.
// Keywords are lowercase substrings tested against a record's text; a topic
// with no keywords acts as the catch-all.
type Topic struct {
	Name     string   `toml:"name"`
	Keywords []string `toml:"keywords"`

	// Color is the "R, G, B" triple applied to every node in this topic's
	// cluster.
	Color string `toml:"color"`
}

// CatchAllTopic is the name of the default fallback research area.
const CatchAllTopic = "general"

// DefaultTopics is the built-in taxonomy, in classification priority order.
//
// The order is load-bearing: classification is first-match, so a record
// matching several keyword sets is assigned to whichever topic is declared
// first. Reordering this slice changes classification results.
var DefaultTopics = []Topic{
	{
		Name:     "neuroevolution",
		Keywords: []string{"neuroevolution", "neural", "evolution", "genetic", "neat"},
		Color:    "94, 234, 212",
	},
	{
		Name:     "ml",
		Keywords: []string{"machine learning", "deep learning", "reinforcement", "classification", "transformer"},
		Color:    "129, 140, 248",
	},
	{
		Name:     "blockchain",
		Keywords: []string{"blockchain", "cryptocurrency", "smart contract", "ledger"},
		Color:    "251, 191, 36",
	},
	{
		Name:     "distributed",
		Keywords: []string{"distributed", "consensus", "peer-to-peer", "p2p"},
		Color:    "248, 113, 113",
	},
	{
		Name:     "robotics",
		Keywords: []string{"robot", "autonomous", "swarm"},
		Color:    "52, 211, 153",
	},
	{
		Name:  CatchAllTopic,
		Color: "148, 163, 184",
	},
}

// topicsFile is the TOML shape of a taxonomy file.
// [[topics]] array-of-tables order becomes classification priority order.
type topicsFile struct {
	Topics []Topic `toml:"topics"`
}

// LoadTopics reads a taxonomy from a TOML file.
//
// The file holds an ordered list of topic tables:
//
//	[[topics]]
//	name = "neuroevolution"
//	keywords = ["neuroevolution", "neural"]
//	color = "94, 234, 212"
//
// A catch-all topic (empty keyword set) is appended automatically when the
// file does not declare one, so every record always classifies somewhere.
func LoadTopics(path string) ([]Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseTopics(data)
}

// ParseTopics decodes and validates a TOML taxonomy.
func ParseTopics(data []byte) ([]Topic, error) {
	var f topicsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	if len(f.Topics) == 0 {
		return nil, fmt.Errorf("taxonomy declares no topics")
	}

	seen := make(map[string]bool, len(f.Topics))
	hasCatchAll := false
	for i, t := range f.Topics {
		if t.Name == "" {
			return nil, fmt.Errorf("topic %d has no name", i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate topic %q", t.Name)
		}
		seen[t.Name] = true
		if len(t.Keywords) == 0 {
			hasCatchAll = true
		}
	}

	topics := f.Topics
	if !hasCatchAll {
		topics = append(topics, Topic{Name: CatchAllTopic, Color: "148, 163, 184"})
	}
	return topics, nil
}

// DetectArea classifies a record into a research area.
//
// The haystack is the lowercase concatenation of title, abstract, and venue.
// Topics are tested in declaration order and the first keyword substring
// match wins - deliberately not best-match, so results stay deterministic
// when several keyword sets match the same text. Records matching nothing
// fall through to the catch-all topic.
func DetectArea(topics []Topic, title, abstract, venue string) string {
	haystack := strings.ToLower(title + " " + abstract + " " + venue)

	for _, t := range topics {
		for _, kw := range t.Keywords {
			if strings.Contains(haystack, kw) {
				return t.Name
			}
		}
	}

	for _, t := range topics {
		if len(t.Keywords) == 0 {
			return t.Name
		}
	}
	return CatchAllTopic
}

// topicColor returns the color of the named topic, or the catch-all color
// when the name is unknown.
func topicColor(topics []Topic, name string) string {
	for _, t := range topics {
		if t.Name == name {
			return t.Color
		}
	}
	return "148, 163, 184"
}
