package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"biography-site/internal/shared/storage/object"
	"biography-site/internal/shared/util"
)

// Store implements MediaStore using the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local media store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes the reader to disk at key, replacing any previous object.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (object.Info, error) {
	if err := ctx.Err(); err != nil {
		return object.Info{}, err
	}
	fullPath, err := s.path(key)
	if err != nil {
		return object.Info{}, err
	}

	contentType, body, err := object.Sniff(r)
	if err != nil {
		return object.Info{}, fmt.Errorf("read sniff: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return object.Info{}, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return object.Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, body)
	if err != nil {
		return object.Info{}, fmt.Errorf("write body: %w", err)
	}
	return object.Info{ContentType: contentType, Size: written}, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, object.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, object.Info{}, err
	}
	fullPath, err := s.path(key)
	if err != nil {
		return nil, object.Info{}, err
	}

	f, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, object.Info{}, object.ErrNotFound
	}
	if err != nil {
		return nil, object.Info{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, object.Info{}, err
	}
	if st.IsDir() {
		f.Close()
		return nil, object.Info{}, object.ErrNotFound
	}

	info := object.Info{Size: st.Size(), ContentType: mime.TypeByExtension(filepath.Ext(fullPath))}
	if info.ContentType == "" {
		info.ContentType = "application/octet-stream"
	}
	return f, info, nil
}

func (s *Store) path(key string) (string, error) {
	clean, err := util.CleanMediaKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(clean)), nil
}

var _ object.MediaStore = (*Store)(nil)
