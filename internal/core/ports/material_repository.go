package ports

import (
	"context"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// MaterialUpdate is the explicit optional-field update for a material.
// Only non-nil fields are written; omitted fields are untouched.
type MaterialUpdate struct {
	Name           *string
	RatePerCuMetre *float64
	Unit           *string
	Stock          *float64
	ImageURL       *string
}

// MaterialRepository defines persistence operations for catalog entries.
type MaterialRepository interface {
	// Create inserts a new material. Returns domain.ErrDuplicateMaterialName
	// when the unique name index rejects the insert.
	Create(ctx context.Context, m *domain.Material) (*domain.Material, error)
	FindByID(ctx context.Context, id string) (*domain.Material, error)
	// FindAll returns every material, newest-created first.
	FindAll(ctx context.Context) ([]*domain.Material, error)
	// Update applies the present fields of upd and returns the updated record.
	Update(ctx context.Context, id string, upd MaterialUpdate) (*domain.Material, error)
	Delete(ctx context.Context, id string) error
}
