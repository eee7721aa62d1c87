package deck

import (
	"strings"

	"git.home.luguber.info/inful/slidedeck/internal/registry"
)

// BlockKind identifies one element of a rendered slide.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockImage
	BlockCaption
	BlockContent
	BlockNotes
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockImage:
		return "image"
	case BlockCaption:
		return "caption"
	case BlockContent:
		return "content"
	case BlockNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// Block is one renderable element. Level and Anchor only apply to headings.
type Block struct {
	Kind   BlockKind
	Level  int
	Text   string
	Anchor string
}

// Heading builds a heading block; anchor may be empty.
func Heading(level int, text, anchor string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: text, Anchor: anchor}
}

// SlideBlocks returns the body blocks of a slide in fixed order: image,
// caption, content, notes. Missing parts produce no block; the caption only
// appears together with a figure.
func SlideBlocks(s registry.Slide) []Block {
	var blocks []Block
	if s.Figure != "" {
		blocks = append(blocks, Block{Kind: BlockImage, Text: s.Figure})
		if caption := s.DisplayCaption(); caption != "" {
			blocks = append(blocks, Block{Kind: BlockCaption, Text: caption})
		}
	}
	if s.Content != "" {
		blocks = append(blocks, Block{Kind: BlockContent, Text: s.Content})
	}
	if s.Notes != "" {
		blocks = append(blocks, Block{Kind: BlockNotes, Text: s.Notes})
	}
	return blocks
}

// RenderBlock returns the lines of a single block, without the separator.
func RenderBlock(b Block) []string {
	switch b.Kind {
	case BlockHeading:
		line := strings.Repeat("#", max(b.Level, 1)) + " " + b.Text
		if b.Anchor != "" {
			line += " {#" + b.Anchor + "}"
		}
		return []string{line}
	case BlockImage:
		return []string{"![](" + b.Text + ")"}
	case BlockCaption:
		return []string{"::: {.caption}", strings.TrimRight(b.Text, " \t\r\n"), ":::"}
	case BlockContent:
		return []string{strings.TrimRight(b.Text, " \t\r\n")}
	case BlockNotes:
		return []string{"::: {.notes}", strings.TrimRight(b.Text, " \t\r\n"), ":::"}
	default:
		return nil
	}
}

// RenderBlocks renders blocks in order. Consecutive blocks are separated by
// exactly one blank line and the result ends with a single newline.
func RenderBlocks(blocks []Block) string {
	return strings.Join(blockLines(blocks), "\n")
}

func blockLines(blocks []Block) []string {
	var lines []string
	for _, block := range blocks {
		lines = append(lines, RenderBlock(block)...)
		lines = append(lines, "")
	}
	return lines
}
