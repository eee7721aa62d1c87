package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	derrors "git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the registry at path.
//
// Missing or unreadable files are filesystem errors. Malformed YAML, wrong
// shapes, missing required fields, duplicate ids and invalid dates are
// validation errors naming the offending entry. Slides referring to
// undeclared topics are accepted so that any persisted registry renders.
func Load(path string) (*Registry, error) {
	// #nosec G304 -- the registry path is chosen by the user running the tool
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "failed to read registry"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "registry file not found"
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, msg).
			Fatal().
			WithContext("path", path).
			Build()
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes registry YAML into the typed model and validates it.
func Parse(data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation, "registry is not valid YAML").
			Fatal().
			Build()
	}

	reg := &Registry{}
	if len(bytes.TrimSpace(data)) == 0 || len(doc.Content) == 0 {
		return reg, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, invalid("registry root must be a mapping")
	}
	fields, err := mappingFields(root, "registry")
	if err != nil {
		return nil, err
	}

	if n, ok := fields["title"]; ok {
		if reg.Title, err = scalarString(n, "title"); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["topics"]; ok && !isNull(n) {
		if reg.Topics, err = parseTopics(n); err != nil {
			return nil, err
		}
	}
	if n, ok := fields["slides"]; ok && !isNull(n) {
		if reg.Slides, err = parseSlides(n); err != nil {
			return nil, err
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Validate checks the registry invariants: unique topic ids, unique slide
// ids, non-empty required fields and calendar-date creation dates.
func (r *Registry) Validate() error {
	topics := make(map[string]struct{}, len(r.Topics))
	for i, t := range r.Topics {
		where := fmt.Sprintf("topics[%d]", i)
		if t.ID == "" {
			return invalid(where + ": id is required")
		}
		if _, dup := topics[t.ID]; dup {
			return invalidf("%s: duplicate topic id %q", where, t.ID)
		}
		topics[t.ID] = struct{}{}
	}

	slides := make(map[string]struct{}, len(r.Slides))
	for i, s := range r.Slides {
		where := fmt.Sprintf("slides[%d]", i)
		if s.ID == "" {
			return invalid(where + ": id is required")
		}
		if _, dup := slides[s.ID]; dup {
			return invalidf("%s: duplicate slide id %q", where, s.ID)
		}
		slides[s.ID] = struct{}{}
		if s.Topic == "" {
			return invalidf("%s (%s): topic is required", where, s.ID)
		}
		if _, err := time.Parse(DateLayout, s.Created); err != nil {
			return invalidf("%s (%s): created %q is not a YYYY-MM-DD date", where, s.ID, s.Created)
		}
	}
	return nil
}

func parseTopics(n *yaml.Node) ([]Topic, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, invalid("topics must be a list")
	}
	topics := make([]Topic, 0, len(n.Content))
	for i, item := range n.Content {
		where := fmt.Sprintf("topics[%d]", i)
		if item.Kind != yaml.MappingNode {
			return nil, invalid(where + " must be a mapping")
		}
		fields, err := mappingFields(item, where)
		if err != nil {
			return nil, err
		}
		var t Topic
		if t.ID, err = optionalString(fields, "id", where); err != nil {
			return nil, err
		}
		if t.Name, err = optionalString(fields, "name", where); err != nil {
			return nil, err
		}
		if on, ok := fields["order"]; ok && !isNull(on) {
			order, convErr := strconv.Atoi(on.Value)
			if on.Kind != yaml.ScalarNode || convErr != nil {
				return nil, invalidf("%s: order %q is not an integer", where, on.Value)
			}
			t.Order = order
		}
		if t.Name == "" && t.ID != "" {
			t.Name = DisplayName(t.ID)
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func parseSlides(n *yaml.Node) ([]Slide, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, invalid("slides must be a list")
	}
	slides := make([]Slide, 0, len(n.Content))
	for i, item := range n.Content {
		where := fmt.Sprintf("slides[%d]", i)
		if item.Kind != yaml.MappingNode {
			return nil, invalid(where + " must be a mapping")
		}
		fields, err := mappingFields(item, where)
		if err != nil {
			return nil, err
		}

		var s Slide
		targets := []struct {
			key string
			dst *string
		}{
			{"id", &s.ID},
			{"topic", &s.Topic},
			{"title", &s.Title},
			{"caption", &s.Caption},
			{"description", &s.Description},
			{"notes", &s.Notes},
			{"content", &s.Content},
			{"figure", &s.Figure},
			{"created", &s.Created},
		}
		for _, tgt := range targets {
			if *tgt.dst, err = optionalString(fields, tgt.key, where); err != nil {
				return nil, err
			}
		}
		if tn, ok := fields["tags"]; ok && !isNull(tn) {
			if tn.Kind != yaml.SequenceNode {
				return nil, invalid(where + ": tags must be a list")
			}
			for j, tag := range tn.Content {
				v, err := scalarString(tag, fmt.Sprintf("%s.tags[%d]", where, j))
				if err != nil {
					return nil, err
				}
				s.Tags = append(s.Tags, v)
			}
		}
		slides = append(slides, s)
	}
	return slides, nil
}

// mappingFields indexes a mapping node by key.
func mappingFields(n *yaml.Node, where string) (map[string]*yaml.Node, error) {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, invalid(where + ": mapping keys must be scalars")
		}
		fields[key.Value] = n.Content[i+1]
	}
	return fields, nil
}

func optionalString(fields map[string]*yaml.Node, key, where string) (string, error) {
	n, ok := fields[key]
	if !ok || isNull(n) {
		return "", nil
	}
	return scalarString(n, where+"."+key)
}

func scalarString(n *yaml.Node, where string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", invalid(where + " must be a scalar")
	}
	if isNull(n) {
		return "", nil
	}
	return n.Value, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func invalid(msg string) error {
	return derrors.ValidationError("invalid registry: " + msg).Build()
}

func invalidf(format string, args ...any) error {
	return invalid(fmt.Sprintf(format, args...))
}
