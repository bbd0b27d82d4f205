package ports

import (
	"context"
	"io"
)

// ImageStore persists uploaded material images and serves them back by
// relative URL.
type ImageStore interface {
	// Save writes the upload under a generated filename (the original
	// filename only contributes its extension) and returns the relative URL
	// to store on the owning record.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Remove deletes the stored file a previously returned URL points at.
	// Removing a URL whose file is already gone is not an error.
	Remove(url string) error
}
