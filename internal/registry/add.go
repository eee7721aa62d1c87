package registry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
	"git.home.luguber.info/inful/slidedeck/internal/logfields"
)

// AddRequest describes a figure to register as a new slide.
type AddRequest struct {
	FigurePath string
	// Topic is inferred from FigurePath when empty.
	Topic string
	// Title is inferred from the file name when empty.
	Title   string
	Caption string
	Notes   string
	Tags    []string
	// Copy copies the figure into FiguresDir/<topic>/ before registering it.
	Copy       bool
	FiguresDir string
	// Created overrides today's date (YYYY-MM-DD).
	Created string
}

// AddResult reports what Add persisted.
type AddResult struct {
	Slide Slide
	// CopiedFrom is set when the figure was copied.
	CopiedFrom string
}

// Add validates req against the registry, allocates a slide id and persists
// the new slide. Validation happens before anything is written.
func (s *Store) Add(req AddRequest) (*AddResult, error) {
	figuresDir := req.FiguresDir
	if figuresDir == "" {
		figuresDir = DefaultFiguresDir
	}
	created := req.Created
	if created == "" {
		created = s.today()
	}

	var (
		result *AddResult
		// copied is the destination Add created, removed again if the
		// registry cannot be saved.
		copied string
	)
	err := s.Update(func(reg *Registry) error {
		topic := req.Topic
		if topic == "" {
			inferred, ok := InferTopicFromPath(req.FigurePath, filepath.Base(figuresDir)).Get()
			if !ok {
				return derrors.ValidationError("could not infer topic from path, please specify --topic").
					WithContext("path", req.FigurePath).
					WithContext(derrors.ContextValidTopics, reg.TopicIDs()).
					Build()
			}
			topic = inferred
		}
		if !reg.HasTopic(topic) {
			return derrors.ValidationError("unknown topic").
				WithContext("topic", topic).
				WithContext(derrors.ContextValidTopics, reg.TopicIDs()).
				Build()
		}

		title := req.Title
		if title == "" {
			title = InferTitleFromFilename(req.FigurePath)
		}

		figure := filepath.ToSlash(req.FigurePath)
		res := &AddResult{}
		if req.Copy {
			dest := filepath.Join(figuresDir, topic, filepath.Base(req.FigurePath))
			// A figure already in place is registered as is; copying it onto
			// itself would truncate it.
			if !sameFile(req.FigurePath, dest) {
				created, err := copyFile(req.FigurePath, dest)
				if created {
					copied = dest
				}
				if err != nil {
					return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to copy figure").
						Fatal().
						WithContext("path", req.FigurePath).
						Build()
				}
				res.CopiedFrom = req.FigurePath
			}
			figure = filepath.ToSlash(dest)
		}

		slide := Slide{
			ID:      AllocateID(title, created, reg.SlideIDs()),
			Topic:   topic,
			Title:   title,
			Caption: req.Caption,
			Notes:   req.Notes,
			Figure:  figure,
			Created: created,
			Tags:    append([]string(nil), req.Tags...),
		}
		reg.Slides = append(reg.Slides, slide)
		res.Slide = slide
		result = res
		return nil
	})
	if err != nil {
		if copied != "" {
			_ = os.Remove(copied)
		}
		return nil, err
	}

	slog.Info("Slide added",
		logfields.SlideID(result.Slide.ID),
		logfields.Topic(result.Slide.Topic),
		logfields.Path(result.Slide.Figure))
	return result, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// copyFile copies src to dst, creating parent directories and keeping the
// source permissions. created reports whether dst did not exist before.
func copyFile(src, dst string) (created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return false, fmt.Errorf("create figure directory: %w", err)
	}

	// #nosec G304 -- src is the figure path given on the command line
	srcFile, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	info, err := srcFile.Stat()
	if err != nil {
		return false, err
	}

	_, statErr := os.Lstat(dst)
	created = os.IsNotExist(statErr)

	// #nosec G304 -- dst is derived from the figures directory and topic id
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return created, err
	}
	return created, dstFile.Close()
}
