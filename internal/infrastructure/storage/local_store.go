package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaterialImageBaseURL is the public URL prefix material images are served
// under; the router statically serves the upload dir at this prefix.
const MaterialImageBaseURL = "/uploads/materials"

// extPattern restricts stored extensions to plain suffixes like ".jpg".
var extPattern = regexp.MustCompile(`^\.[a-zA-Z0-9]+$`)

// LocalStore persists uploads on the local filesystem under dir and serves
// them back under baseURL (static-served by the HTTP layer).
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the upload directory if needed and returns a store.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the upload under a uuid filename, keeping only the extension of
// the client-supplied name, and returns the relative URL to store on the record.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Remove deletes the stored file a previously returned URL points at. Only
// the basename is honored so a crafted URL cannot escape the upload dir.
// A file that is already gone is not an error.
func (s *LocalStore) Remove(url string) error {
	name := path.Base(url)
	if name == "." || name == "/" || name == "" {
		return fmt.Errorf("invalid stored image url %q", url)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}
