package registry

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	derrors "git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

// Marshal encodes the registry as block-style YAML with a fixed key order so
// diffs stay readable across commits.
func Marshal(r *Registry) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if r.Title != "" {
		addScalar(root, "title", r.Title)
	}

	topics := &yaml.Node{Kind: yaml.SequenceNode}
	for _, t := range r.Topics {
		tn := &yaml.Node{Kind: yaml.MappingNode}
		addScalar(tn, "id", t.ID)
		addScalar(tn, "name", t.Name)
		addPair(tn, "order", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t.Order)})
		topics.Content = append(topics.Content, tn)
	}
	addPair(root, "topics", topics)

	slides := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range r.Slides {
		slides.Content = append(slides.Content, slideNode(s))
	}
	addPair(root, "slides", slides)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func slideNode(s Slide) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(n, "id", s.ID)
	addScalar(n, "topic", s.Topic)
	addScalar(n, "title", s.Title)
	addScalar(n, "caption", s.Caption)
	if s.Description != "" {
		addScalar(n, "description", s.Description)
	}
	addScalar(n, "notes", s.Notes)
	if s.Content != "" {
		addScalar(n, "content", s.Content)
	}
	addScalar(n, "figure", s.Figure)
	// Quoted so YAML tooling keeps reading it as a string, not a timestamp.
	addPair(n, "created", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.SingleQuotedStyle, Value: s.Created})

	tags := &yaml.Node{Kind: yaml.SequenceNode}
	for _, tag := range s.Tags {
		tags.Content = append(tags.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: tag})
	}
	addPair(n, "tags", tags)
	return n
}

func addScalar(m *yaml.Node, key, value string) {
	addPair(m, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

// Save validates r and writes it to path, replacing the file atomically
// (write to path.tmp, then rename).
func Save(path string, r *Registry) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := Marshal(r)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to encode registry").Build()
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil { // #nosec G306 -- registry is a project file meant to be committed
		return fsError(err, "failed to write registry", path)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fsError(err, "failed to replace registry", path)
	}
	return nil
}

func fsError(err error, msg, path string) error {
	return derrors.WrapError(err, derrors.CategoryFileSystem, msg).
		Fatal().
		WithContext("path", path).
		Build()
}

const lockedMessage = "registry is locked by another slidedeck process"

// ErrLocked matches (via errors.Is) the error returned when another process
// holds the registry lock.
var ErrLocked = derrors.FileSystemError(lockedMessage).Build()

// lockRegistry takes the advisory lock for path. The returned function
// releases it.
func lockRegistry(path string) (func(), error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, derrors.FileSystemError(lockedMessage).
				Immediate().
				WithContext("lock", lockPath).
				Build()
		}
		return nil, fsError(err, "failed to create registry lock", lockPath)
	}
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Close()
	return func() { _ = os.Remove(lockPath) }, nil
}
