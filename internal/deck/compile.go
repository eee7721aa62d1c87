package deck

import (
	"sort"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

const (
	// DefaultRecentCount is the number of slides in the recent digest.
	DefaultRecentCount = 10

	// unknownTopicOrder sorts topics without a declaration after all others.
	unknownTopicOrder = 999

	recentTitle = "Recent Figures"
	emptyNotice = "No figures added yet."
	emptyHint   = "Run `slidedeck add` to add your first figure."
)

// Document is a compiled output document: front matter lines (without the
// --- delimiters) followed by body blocks.
type Document struct {
	FrontMatter []string
	Blocks      []Block
}

// Render returns the full document text.
func (d Document) Render() string {
	lines := make([]string, 0, len(d.FrontMatter)+3)
	lines = append(lines, "---")
	lines = append(lines, d.FrontMatter...)
	lines = append(lines, "---", "")
	lines = append(lines, blockLines(d.Blocks)...)
	return strings.Join(lines, "\n")
}

// FrontMatterText returns the front matter without delimiters.
func (d Document) FrontMatterText() string {
	return strings.Join(d.FrontMatter, "\n")
}

// BodyText returns the rendered body.
func (d Document) BodyText() string {
	return RenderBlocks(d.Blocks)
}

func deckFrontMatter(title string) []string {
	return []string{
		"title: " + strconv.Quote(title),
		"format:",
		"  revealjs:",
		"    theme: default",
		"    slide-number: true",
		"    fig-cap-location: bottom",
		"    margin: 0.05",
		"    scrollable: true",
		"css: " + StylesFile,
	}
}

func recentFrontMatter() []string {
	return []string{
		"title: " + strconv.Quote(recentTitle),
		"format:",
		"  revealjs:",
		"    theme: default",
		"    slide-number: true",
		"    fig-cap-location: bottom",
		"css: " + StylesFile,
	}
}

func placeholder(heading string) []Block {
	return []Block{
		Heading(1, heading, ""),
		{Kind: BlockContent, Text: emptyNotice},
		{Kind: BlockContent, Text: emptyHint},
	}
}

// TopicSection is one topic heading and its slides, newest first.
type TopicSection struct {
	Topic  registry.Topic
	Slides []registry.Slide
}

// GroupByTopic partitions slides by topic and orders the groups by the
// declared topic order. Topics without a declaration sort last and get a
// name derived from their id. Groups with equal order keep the order in
// which their first slide appears; slides with equal dates keep registry
// order.
func GroupByTopic(reg *registry.Registry) []TopicSection {
	index := make(map[string]int)
	var sections []TopicSection
	for _, s := range reg.Slides {
		i, ok := index[s.Topic]
		if !ok {
			topic, declared := reg.TopicByID(s.Topic)
			if !declared {
				topic = registry.Topic{ID: s.Topic, Name: registry.DisplayName(s.Topic), Order: unknownTopicOrder}
			}
			i = len(sections)
			index[s.Topic] = i
			sections = append(sections, TopicSection{Topic: topic})
		}
		sections[i].Slides = append(sections[i].Slides, s)
	}

	sort.SliceStable(sections, func(a, b int) bool {
		return sections[a].Topic.Order < sections[b].Topic.Order
	})
	for i := range sections {
		sortNewestFirst(sections[i].Slides)
	}
	return sections
}

// RecentSlides returns at most count slides across all topics, newest first.
func RecentSlides(reg *registry.Registry, count int) []registry.Slide {
	slides := append([]registry.Slide(nil), reg.Slides...)
	sortNewestFirst(slides)
	if count < 0 {
		count = 0
	}
	if count < len(slides) {
		slides = slides[:count]
	}
	return slides
}

func sortNewestFirst(slides []registry.Slide) {
	sort.SliceStable(slides, func(a, b int) bool {
		return slides[a].Created > slides[b].Created
	})
}

// CompileDeck builds the topic-grouped deck.
func CompileDeck(reg *registry.Registry) Document {
	doc := Document{FrontMatter: deckFrontMatter(reg.DisplayTitle())}
	if len(reg.Slides) == 0 {
		doc.Blocks = placeholder("Welcome")
		return doc
	}

	for _, section := range GroupByTopic(reg) {
		doc.Blocks = append(doc.Blocks, Heading(1, section.Topic.Name, strings.ReplaceAll(section.Topic.ID, "_", "-")))
		for _, s := range section.Slides {
			doc.Blocks = append(doc.Blocks, Heading(2, s.Title, s.ID))
			doc.Blocks = append(doc.Blocks, SlideBlocks(s)...)
		}
	}
	return doc
}

// CompileRecent builds the flat digest of the count most recent slides.
func CompileRecent(reg *registry.Registry, count int) Document {
	doc := Document{FrontMatter: recentFrontMatter()}
	if len(reg.Slides) == 0 {
		doc.Blocks = placeholder(recentTitle)
		return doc
	}

	for _, s := range RecentSlides(reg, count) {
		doc.Blocks = append(doc.Blocks, Heading(2, s.Title, ""))
		doc.Blocks = append(doc.Blocks, SlideBlocks(s)...)
	}
	return doc
}

// BuildDeck returns the rendered slides.qmd content.
func BuildDeck(reg *registry.Registry) string {
	return CompileDeck(reg).Render()
}

// BuildRecent returns the rendered recent.qmd content.
func BuildRecent(reg *registry.Registry, count int) string {
	return CompileRecent(reg, count).Render()
}
