// Package deck compiles a registry into the Quarto documents of a project:
// the topic-grouped deck (slides.qmd), the flat recent digest (recent.qmd)
// and the fixed stylesheet (styles.css).
//
// Compilation is a two-step process. Slides are first turned into an
// explicit list of blocks (heading, image, caption, content, notes) and the
// block list is then rendered, so which blocks exist and how they are
// separated can be tested independently. Every build recomputes all output
// from the full registry.
package deck
