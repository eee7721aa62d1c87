package deck

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestBuildDeckGolden(t *testing.T) {
	newGolden(t).Assert(t, "deck", []byte(BuildDeck(labRegistry())))
}

func TestBuildRecentGolden(t *testing.T) {
	newGolden(t).Assert(t, "recent", []byte(BuildRecent(labRegistry(), 3)))
}

func TestEmptyRegistryPlaceholders(t *testing.T) {
	g := newGolden(t)
	empty := &registry.Registry{}
	g.Assert(t, "deck_empty", []byte(BuildDeck(empty)))
	g.Assert(t, "recent_empty", []byte(BuildRecent(empty, DefaultRecentCount)))
}

func TestBuildIsDeterministic(t *testing.T) {
	reg := labRegistry()
	require.Equal(t, BuildDeck(reg), BuildDeck(reg))
	require.Equal(t, BuildRecent(reg, 2), BuildRecent(reg, 2))
}

func TestBuildDoesNotMutateRegistry(t *testing.T) {
	reg := labRegistry()
	before := labRegistry()
	_ = BuildDeck(reg)
	_ = BuildRecent(reg, 10)
	require.Equal(t, before, reg)
}

func TestRecentCountBounds(t *testing.T) {
	reg := labRegistry()

	zero := BuildRecent(reg, 0)
	require.NotContains(t, zero, "## ")
	require.True(t, strings.HasSuffix(zero, "---\n"))

	all := BuildRecent(reg, 100)
	require.Equal(t, len(reg.Slides), strings.Count(all, "\n## "))
}

func TestGroupByTopicOrdering(t *testing.T) {
	reg := &registry.Registry{
		Topics: []registry.Topic{
			{ID: "b", Name: "B", Order: 1},
			{ID: "a", Name: "A", Order: 1},
			{ID: "first", Name: "First", Order: 0},
		},
		Slides: []registry.Slide{
			{ID: "1", Topic: "a", Created: "2024-01-01"},
			{ID: "2", Topic: "ghost_topic", Created: "2024-01-01"},
			{ID: "3", Topic: "b", Created: "2024-01-01"},
			{ID: "4", Topic: "first", Created: "2024-01-01"},
			{ID: "5", Topic: "a", Created: "2024-05-01"},
		},
	}

	sections := GroupByTopic(reg)
	var order []string
	for _, s := range sections {
		order = append(order, s.Topic.ID)
	}
	require.Equal(t, []string{"first", "a", "b", "ghost_topic"}, order)
	require.Equal(t, "Ghost Topic", sections[3].Topic.Name)
	require.Equal(t, 999, sections[3].Topic.Order)

	require.Equal(t, "5", sections[1].Slides[0].ID)
	require.Equal(t, "1", sections[1].Slides[1].ID)
}

func TestRecentSlidesStableForEqualDates(t *testing.T) {
	reg := &registry.Registry{Slides: []registry.Slide{
		{ID: "x", Created: "2024-01-01"},
		{ID: "y", Created: "2024-01-01"},
		{ID: "z", Created: "2024-01-02"},
	}}
	got := RecentSlides(reg, 10)
	require.Equal(t, "z", got[0].ID)
	require.Equal(t, "x", got[1].ID)
	require.Equal(t, "y", got[2].ID)
}

func TestTopicAnchorUsesDashes(t *testing.T) {
	reg := &registry.Registry{
		Topics: []registry.Topic{{ID: "data_exploration", Name: "Data Exploration", Order: 1}},
		Slides: []registry.Slide{{ID: "s", Topic: "data_exploration", Title: "T", Created: "2024-01-01"}},
	}
	require.Contains(t, BuildDeck(reg), "# Data Exploration {#data-exploration}\n")
}

func TestDeckProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		topics := []string{"intro", "methods", "results"}
		n := rapid.IntRange(1, 20).Draw(t, "n")
		reg := &registry.Registry{}
		for i, id := range topics {
			reg.Topics = append(reg.Topics, registry.Topic{ID: id, Name: id, Order: i})
		}
		for i := range n {
			day := rapid.IntRange(1, 28).Draw(t, "day")
			reg.Slides = append(reg.Slides, registry.Slide{
				ID:      "slide_" + strings.Repeat("x", i+1),
				Topic:   rapid.SampledFrom(topics).Draw(t, "topic"),
				Title:   "Slide",
				Created: fmt.Sprintf("2024-01-%02d", day),
			})
		}

		// every slide appears exactly once in the deck
		deckText := BuildDeck(reg)
		for _, s := range reg.Slides {
			if got := strings.Count(deckText, "{#"+s.ID+"}\n"); got != 1 {
				t.Fatalf("slide %s rendered %d times", s.ID, got)
			}
		}

		// recent digest never exceeds count and is newest first
		count := rapid.IntRange(0, 25).Draw(t, "count")
		recent := RecentSlides(reg, count)
		if len(recent) > count {
			t.Fatalf("recent has %d slides, want at most %d", len(recent), count)
		}
		for i := 1; i < len(recent); i++ {
			if recent[i-1].Created < recent[i].Created {
				t.Fatalf("recent not sorted: %s before %s", recent[i-1].Created, recent[i].Created)
			}
		}
	})
}
