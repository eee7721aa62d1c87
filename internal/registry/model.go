package registry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the layout of Slide.Created. Lexicographic order of values in
// this layout equals chronological order.
const DateLayout = "2006-01-02"

// DefaultTitle is used for the deck when the registry has no title.
const DefaultTitle = "Research Figures"

// Registry is the root aggregate persisted in slides.yaml.
type Registry struct {
	Title  string
	Topics []Topic
	Slides []Slide
}

// Topic is a named slide grouping with a declared display order.
type Topic struct {
	ID    string
	Name  string
	Order int
}

// Slide is one figure/notes entry belonging to exactly one topic.
type Slide struct {
	ID      string
	Topic   string
	Title   string
	Caption string
	// Description is the legacy caption field; it is read but never written
	// for new slides.
	Description string
	Notes       string
	Content     string
	Figure      string
	Created     string
	Tags        []string
}

// DisplayCaption returns the caption, falling back to the legacy description.
func (s Slide) DisplayCaption() string {
	if s.Caption != "" {
		return s.Caption
	}
	return s.Description
}

// TopicIDs returns topic ids in registry order.
func (r *Registry) TopicIDs() []string {
	ids := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		ids = append(ids, t.ID)
	}
	return ids
}

// TopicByID looks up a topic.
func (r *Registry) TopicByID(id string) (Topic, bool) {
	for _, t := range r.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// HasTopic reports whether id names a declared topic.
func (r *Registry) HasTopic(id string) bool {
	_, ok := r.TopicByID(id)
	return ok
}

// SlideIDs returns the set of slide ids currently in use.
func (r *Registry) SlideIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.Slides))
	for _, s := range r.Slides {
		ids[s.ID] = struct{}{}
	}
	return ids
}

// DisplayTitle returns the registry title or DefaultTitle.
func (r *Registry) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return DefaultTitle
}

// DisplayName derives a human-readable name from a topic id:
// "data_exploration" becomes "Data Exploration".
func DisplayName(topicID string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(topicID, "_", " "))
}
