// Package catalog provides recipe catalog implementations.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

//go:embed recipes.yaml
var builtinCatalog []byte

// Compile-time interface check.
var _ domain.Catalog = (*MemorySource)(nil)

// MemorySource holds a catalog in memory. It is never mutated after
// construction, so concurrent reads need no locking.
type MemorySource struct {
	recipes  []domain.Recipe
	byID     map[string]int
	cuisines []domain.CuisineGroup
	log      *logger.Logger
}

// NewMemorySource creates a source preloaded with the built-in catalog.
func NewMemorySource(log *logger.Logger) (*MemorySource, error) {
	return FromBytes(builtinCatalog, log)
}

// LoadFile reads a YAML or JSON catalog from disk.
func LoadFile(path string, log *logger.Logger) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	src, err := FromBytes(data, log)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return src, nil
}

// FromBytes builds a source from an encoded catalog.
func FromBytes(data []byte, log *logger.Logger) (*MemorySource, error) {
	recipes, cuisines, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return New(recipes, cuisines, log), nil
}

// New wraps already-decoded records. The slices are owned by the source
// afterwards.
func New(recipes []domain.Recipe, cuisines []domain.CuisineGroup, log *logger.Logger) *MemorySource {
	src := &MemorySource{
		recipes:  recipes,
		byID:     make(map[string]int, len(recipes)),
		cuisines: cuisines,
		log:      log,
	}
	for i, r := range recipes {
		src.byID[r.ID] = i
	}
	log.Debug("catalog loaded: %d recipes, %d cuisine regions", len(recipes), len(cuisines))
	return src
}

// Recipes returns every recipe in catalog order.
func (s *MemorySource) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	out := make([]domain.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out, nil
}

// Cuisines returns the browsable cuisine tree.
func (s *MemorySource) Cuisines(ctx context.Context) ([]domain.CuisineGroup, error) {
	out := make([]domain.CuisineGroup, len(s.cuisines))
	copy(out, s.cuisines)
	return out, nil
}

// Get returns a recipe by ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	i, ok := s.byID[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	r := s.recipes[i]
	return &r, nil
}

// Len returns the number of recipes.
func (s *MemorySource) Len() int { return len(s.recipes) }
