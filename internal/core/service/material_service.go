package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

// MaterialService implements the catalog lifecycle: validated numeric
// coercion, partial updates, and the image attachment file lifecycle.
type MaterialService struct {
	repo    ports.MaterialRepository
	images  ports.ImageStore
	cleanup ports.CleanupQueue
	logger  zerolog.Logger
}

// NewMaterialService builds a MaterialService. cleanup may be nil; failed
// file removals are then only logged.
func NewMaterialService(repo ports.MaterialRepository, images ports.ImageStore, cleanup ports.CleanupQueue, logger zerolog.Logger) *MaterialService {
	return &MaterialService{repo: repo, images: images, cleanup: cleanup, logger: logger}
}

// List returns all materials, newest-created first.
func (s *MaterialService) List(ctx context.Context) ([]*domain.Material, error) {
	return s.repo.FindAll(ctx)
}

// Create validates and inserts a new material. Numeric fields are coerced and
// rejected before any store write. An image saved ahead of a failed insert is
// removed again so no orphan file survives.
func (s *MaterialService) Create(ctx context.Context, in ports.CreateMaterialInput) (*domain.Material, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.RatePerCuMetre) == "" {
		return nil, domain.NewValidationError("Please provide name and ratePerCuMetre")
	}

	rate, err := parseNonNegative("ratePerCuMetre", in.RatePerCuMetre)
	if err != nil {
		return nil, err
	}

	stock := 0.0
	if strings.TrimSpace(in.Stock) != "" {
		stock, err = parseNonNegative("stock", in.Stock)
		if err != nil {
			return nil, err
		}
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = domain.DefaultUnit
	}

	imageURL := ""
	if in.Image != nil {
		imageURL, err = s.images.Save(ctx, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Material{
		Name:           strings.TrimSpace(in.Name),
		RatePerCuMetre: rate,
		Unit:           unit,
		Stock:          stock,
		ImageURL:       imageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		if imageURL != "" {
			s.removeStoredImage(imageURL)
		}
		return nil, err
	}

	s.logger.Info().Str("material_id", created.ID).Str("name", created.Name).Msg("material created")
	return created, nil
}

// Update applies a partial update. A new image replaces the stored file: the
// old file is removed best-effort before the new reference is persisted.
func (s *MaterialService) Update(ctx context.Context, id string, in ports.UpdateMaterialInput) (*domain.Material, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var upd ports.MaterialUpdate

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		upd.Name = &name
	}
	if in.RatePerCuMetre != nil {
		rate, err := parseNonNegative("ratePerCuMetre", *in.RatePerCuMetre)
		if err != nil {
			return nil, err
		}
		upd.RatePerCuMetre = &rate
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		upd.Unit = &unit
	}
	if in.Stock != nil {
		stock, err := parseNonNegative("stock", *in.Stock)
		if err != nil {
			return nil, err
		}
		upd.Stock = &stock
	}

	if in.Image != nil {
		if current.ImageURL != "" {
			s.removeStoredImage(current.ImageURL)
		}
		url, err := s.images.Save(ctx, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, err
		}
		upd.ImageURL = &url
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if upd.ImageURL != nil {
			s.removeStoredImage(*upd.ImageURL)
		}
		return nil, err
	}

	s.logger.Info().Str("material_id", id).Msg("material updated")
	return updated, nil
}

// Delete removes a material and its stored image. Record deletion proceeds
// even when the file removal fails.
func (s *MaterialService) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if current.ImageURL != "" {
		s.removeStoredImage(current.ImageURL)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("material_id", id).Msg("material deleted")
	return nil
}

// removeStoredImage deletes a stored file best-effort. Failures are logged
// and handed to the cleanup queue for retry; they never fail the caller.
func (s *MaterialService) removeStoredImage(url string) {
	if err := s.images.Remove(url); err != nil {
		s.logger.Warn().Err(err).Str("image_url", url).Msg("image removal failed")
		if s.cleanup != nil {
			s.cleanup.Enqueue(url)
		}
	}
}

// parseNonNegative coerces a raw form value to a non-negative number with a
// field-specific rejection message.
func parseNonNegative(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, domain.NewValidationError(field + " must be a valid positive number")
	}
	return v, nil
}
