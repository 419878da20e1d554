package tools

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/toolgate/internal/domain"
)

// CreateFile writes the full content, creating parents after authorization.
func (s *Service) CreateFile(_ context.Context, req domain.CreateFile) domain.Outcome {
	kind := req.Kind()
	if info, err := s.FS.Stat(req.Path); err == nil && info.IsDir() {
		return s.fail(kind, req.Path, fmt.Errorf("%w: %s", domain.ErrIsDirectory, req.Path))
	}

	risk := s.Classifier.ClassifyPath(req.Path)
	description := fmt.Sprintf("create/overwrite file %s (%s)", req.Path, humanize.Bytes(uint64(len(req.Content))))
	if out, ok := s.authorize(kind, req.Path, description, risk); !ok {
		return out
	}

	s.Reporter.Started(kind, req.Path)
	if err := s.FS.WriteFile(req.Path, req.Content); err != nil {
		return s.fail(kind, req.Path, err)
	}
	out := domain.Succeeded(kind)
	out.Path = req.Path
	out.WriteResult = &domain.WriteResult{Size: len(req.Content)}
	return out
}

// ReadFile returns the file as text; content that is not UTF-8 fails.
func (s *Service) ReadFile(_ context.Context, req domain.ReadFile) domain.Outcome {
	kind := req.Kind()
	if err := s.existingFile(req.Path); err != nil {
		return s.fail(kind, req.Path, err)
	}

	risk := s.Classifier.ClassifyPath(req.Path)
	if out, ok := s.authorize(kind, req.Path, "read file "+req.Path, risk); !ok {
		return out
	}

	s.Reporter.Started(kind, req.Path)
	data, err := s.FS.ReadFile(req.Path)
	if err != nil {
		return s.fail(kind, req.Path, err)
	}
	if !utf8.Valid(data) {
		return s.fail(kind, req.Path, fmt.Errorf("%w: %s", domain.ErrNotText, req.Path))
	}
	out := domain.Succeeded(kind)
	out.Path = req.Path
	out.ReadResult = &domain.ReadResult{Content: string(data)}
	return out
}

// DeleteFile removes exactly one regular file.
func (s *Service) DeleteFile(_ context.Context, req domain.DeleteFile) domain.Outcome {
	kind := req.Kind()
	if err := s.existingFile(req.Path); err != nil {
		return s.fail(kind, req.Path, err)
	}

	risk := s.Classifier.ClassifyPath(req.Path)
	if out, ok := s.authorize(kind, req.Path, "delete file "+req.Path, risk); !ok {
		return out
	}

	s.Reporter.Started(kind, req.Path)
	if err := s.FS.Remove(req.Path); err != nil {
		return s.fail(kind, req.Path, err)
	}
	out := domain.Succeeded(kind)
	out.Path = req.Path
	return out
}

// ListFiles enumerates the working directory, which is classified as ".".
func (s *Service) ListFiles(_ context.Context, req domain.ListFiles) domain.Outcome {
	kind := req.Kind()
	const subject = "."

	description := "list files in the working directory"
	if req.Detailed {
		description += " (with size, permissions and modification time)"
	}
	risk := s.Classifier.ClassifyPath(subject)
	if out, ok := s.authorize(kind, subject, description, risk); !ok {
		return out
	}

	s.Reporter.Started(kind, subject)
	entries, err := s.FS.List(req.Detailed)
	if err != nil {
		return s.fail(kind, subject, err)
	}
	result := &domain.ListResult{Count: len(entries)}
	if req.Detailed {
		result.Details = entries
	} else {
		for _, entry := range entries {
			name := entry.Name
			if entry.IsDir {
				name += "/"
			}
			result.Entries = append(result.Entries, name)
		}
	}
	out := domain.Succeeded(kind)
	out.ListResult = result
	return out
}
