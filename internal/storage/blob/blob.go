package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/reg-hunter/internal/storage"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/stringsutil"
	"github.com/spf13/afero"
)

var ErrInvalidPath = errors.New("invalid blob path")

// Store keeps blobs as files under a root directory.
type Store struct {
	fs afero.Fs
}

// NewStore roots the store at dir on the OS filesystem.
func NewStore(dir string) *Store {
	return NewStoreFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

func NewStoreFs(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

func (s *Store) Write(ctx context.Context, p string, data []byte) error {
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(clean), 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, clean, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", clean, err)
	}
	return nil
}

func (s *Store) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", clean, err)
	}
	return f, nil
}

// Delete removes a blob. Missing blobs are not an error.
func (s *Store) Delete(ctx context.Context, p string) error {
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(clean); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob %s: %w", clean, err)
	}
	return nil
}

// Healthy reports whether the root directory exists or can be created.
func (s *Store) Healthy(context.Context) bool {
	if err := s.fs.MkdirAll("/", 0o755); err != nil {
		return false
	}
	info, err := s.fs.Stat("/")
	return err == nil && info.IsDir()
}

// ReadPrefix reads at most limit characters of a blob. A limit <= 0 reads it all.
func ReadPrefix(ctx context.Context, s storage.BlobStore, p string, limit int) (string, error) {
	rc, err := s.Open(ctx, p)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, int64(limit)*utf8.UTFMax)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read blob %s: %w", p, err)
	}
	return stringsutil.TruncateRunes(string(data), limit), nil
}

func cleanPath(p string) (string, error) {
	if p == "" {
		return "", ErrInvalidPath
	}
	clean := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return clean, nil
}
