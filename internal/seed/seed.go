// Package seed loads the catalog from a YAML book list and keeps it in sync
// when the file changes.
package seed

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bookwise/bookwise/internal/catalog"
	"github.com/bookwise/bookwise/internal/models"
)

// File is the shape of a catalog seed file.
type File struct {
	Books []models.BookInput `yaml:"books"`
}

// LoadFile parses a seed file from path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Seeder replaces the catalog contents with a seed file's book list.
type Seeder struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewSeeder creates a seeder.
func NewSeeder(cat *catalog.Catalog, logger *zap.Logger) *Seeder {
	return &Seeder{catalog: cat, logger: logger}
}

// Run clears the catalog and indexes every book from the seed file at path.
// Replacing rather than appending keeps repeated seeds from accumulating
// duplicate entries.
func (s *Seeder) Run(ctx context.Context, path string) (int, error) {
	f, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	if err := s.catalog.Clear(ctx); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	for _, book := range f.Books {
		if _, err := s.catalog.Index(ctx, book); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
	}
	if s.logger != nil {
		s.logger.Info("catalog seeded", zap.String("path", path), zap.Int("books", len(f.Books)))
	}
	return len(f.Books), nil
}
