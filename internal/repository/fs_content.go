package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"ProbabilityPit/internal/domain/repository"
)

// FSContentSource reads lesson files from a directory tree.
type FSContentSource struct {
	fsys fs.FS
}

// NewFSContentSource serves files from dir on disk.
func NewFSContentSource(dir string) *FSContentSource {
	return &FSContentSource{fsys: os.DirFS(dir)}
}

// NewFSContentSourceFS serves files from an arbitrary fs.FS (embedded or test maps).
func NewFSContentSourceFS(fsys fs.FS) *FSContentSource {
	return &FSContentSource{fsys: fsys}
}

func (s *FSContentSource) Name() string { return "fs" }

// FS exposes the underlying filesystem so the raw files can be served as static assets.
func (s *FSContentSource) FS() fs.FS { return s.fsys }

func (s *FSContentSource) Fetch(ctx context.Context, file string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(file)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid content path %q", file)
	}

	b, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, repository.ErrContentNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}

var _ repository.ContentSource = (*FSContentSource)(nil)
