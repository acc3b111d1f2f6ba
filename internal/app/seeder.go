package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gobid/auctionhouse/internal/core/ports"
	"github.com/gobid/auctionhouse/internal/domain"
)

// CategorySeeder creates categories by name, deriving their URL slugs.
// Categories are created administratively; this is the administrative path.
type CategorySeeder struct {
	catalogStorage ports.CatalogStorage
	logger         *slog.Logger
}

func NewCategorySeeder(catalogStorage ports.CatalogStorage, logger *slog.Logger) *CategorySeeder {
	return &CategorySeeder{catalogStorage: catalogStorage, logger: logger}
}

// Seed creates one category per name. Names whose slug already exists are
// skipped, so re-running is harmless.
func (s *CategorySeeder) Seed(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("no category names given")
	}

	for _, name := range names {
		category := domain.NewCategory(name, "")
		err := s.catalogStorage.CreateCategory(ctx, &category)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.logger.Info("category already exists, skipping", "name", name, "slug", category.Slug)
				continue
			}
			return fmt.Errorf("seeding category %q: %w", name, err)
		}
		s.logger.Info("category seeded", "name", name, "slug", category.Slug)
	}
	return nil
}
