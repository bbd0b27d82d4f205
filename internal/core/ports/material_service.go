package ports

import (
	"context"
	"io"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// ImageUpload is a pending material image. Filename is the client-supplied
// name, used only for its extension; Content is the file body.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateMaterialInput carries the create fields. Rate and stock arrive as the
// raw strings from the multipart form; the service owns numeric coercion so
// that malformed values are rejected before any store write.
type CreateMaterialInput struct {
	Name           string
	RatePerCuMetre string
	Unit           string
	Stock          string
	Image          *ImageUpload
}

// UpdateMaterialInput is the explicit optional-field update payload. Only
// non-nil fields are applied; omitted fields are untouched.
type UpdateMaterialInput struct {
	Name           *string
	RatePerCuMetre *string
	Unit           *string
	Stock          *string
	Image          *ImageUpload
}

// MaterialService implements the catalog lifecycle including the image
// attachment handling.
type MaterialService interface {
	// List returns all materials, newest-created first.
	List(ctx context.Context) ([]*domain.Material, error)
	Create(ctx context.Context, in CreateMaterialInput) (*domain.Material, error)
	Update(ctx context.Context, id string, in UpdateMaterialInput) (*domain.Material, error)
	Delete(ctx context.Context, id string) error
}
