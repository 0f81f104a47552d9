package build

import (
	"testing"
)

func TestDetectArea(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		abstract string
		venue    string
		want     string
	}{
		{name: "Neuroevolution", title: "Evolving Spiking Networks", abstract: "neuroevolution of topologies", want: "neuroevolution"},
		{name: "CaseInsensitive", title: "NEUROEVOLUTION at Scale", want: "neuroevolution"},
		{name: "ML", title: "Deep Learning for Vision", want: "ml"},
		{name: "VenueContributes", title: "A Study", venue: "Conference on Machine Learning", want: "ml"},
		{name: "AbstractContributes", title: "A Study", abstract: "we train a transformer", want: "ml"},
		{name: "Blockchain", title: "Smart Contract Verification", want: "blockchain"},
		{name: "Fallback", title: "On the Nature of Things", want: "general"},
		{name: "Empty", want: "general"},

		// First-match priority: both keyword sets match, earlier declaration
		// wins. "Neural" belongs to neuroevolution, which is declared before
		// ml, so the record never reaches the ml keyword test.
		{name: "FirstMatchNeuralOverML", title: "Neural Machine Learning Methods", want: "neuroevolution"},
		{name: "FirstMatchBlockchainOverDistributed", title: "Blockchain for Distributed Systems", want: "blockchain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectArea(DefaultTopics, tt.title, tt.abstract, tt.venue)
			if got != tt.want {
				t.Errorf("DetectArea(%q, %q, %q) = %q, want %q", tt.title, tt.abstract, tt.venue, got, tt.want)
			}
			// Pure function of text content: repeat calls must agree.
			if again := DetectArea(DefaultTopics, tt.title, tt.abstract, tt.venue); again != got {
				t.Errorf("DetectArea not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestParseTopics(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, topics []Topic)
	}{
		{
			name: "OrderPreserved",
			input: `
[[topics]]
name = "quantum"
keywords = ["qubit"]
color = "1, 2, 3"

[[topics]]
name = "ml"
keywords = ["learning"]
color = "4, 5, 6"
`,
			check: func(t *testing.T, topics []Topic) {
				if topics[0].Name != "quantum" || topics[1].Name != "ml" {
					t.Errorf("order not preserved: %v", topics)
				}
				// No catch-all declared: one is appended at the end.
				last := topics[len(topics)-1]
				if len(last.Keywords) != 0 || last.Name != CatchAllTopic {
					t.Errorf("missing appended catch-all, got %+v", last)
				}
			},
		},
		{
			name: "ExplicitCatchAll",
			input: `
[[topics]]
name = "quantum"
keywords = ["qubit"]

[[topics]]
name = "misc"
keywords = []
`,
			check: func(t *testing.T, topics []Topic) {
				if len(topics) != 2 {
					t.Errorf("catch-all appended despite explicit one: %v", topics)
				}
			},
		},
		{name: "Empty", input: ``, wantErr: true},
		{name: "Unnamed", input: "[[topics]]\nkeywords = [\"x\"]\n", wantErr: true},
		{name: "Duplicate", input: "[[topics]]\nname = \"a\"\nkeywords = [\"x\"]\n\n[[topics]]\nname = \"a\"\nkeywords = [\"y\"]\n", wantErr: true},
		{name: "Malformed", input: `topics = "nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics, err := ParseTopics([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTopics: %v", err)
			}
			if tt.check != nil {
				tt.check(t, topics)
			}
		})
	}
}

func TestDefaultTopicsEndWithCatchAll(t *testing.T) {
	last := DefaultTopics[len(DefaultTopics)-1]
	if last.Name != CatchAllTopic || len(last.Keywords) != 0 {
		t.Errorf("taxonomy must end with the empty-keyword catch-all, got %+v", last)
	}
	for _, topic := range DefaultTopics[:len(DefaultTopics)-1] {
		if len(topic.Keywords) == 0 {
			t.Errorf("topic %q has no keywords but is not the catch-all", topic.Name)
		}
	}
}
