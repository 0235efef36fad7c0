package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// HabitatCollection holds the currently loaded habitats with the same
// reconciliation rules as the animal collection, plus a referential guard
// on delete.
type HabitatCollection struct {
	api    domain.SanctuaryAPI
	logger *slog.Logger
	items  []domain.Habitat
}

func NewHabitatCollection(api domain.SanctuaryAPI, logger *slog.Logger) *HabitatCollection {
	if logger == nil {
		logger = slog.Default()
	}
	return &HabitatCollection{api: api, logger: logger}
}

func (c *HabitatCollection) Load(ctx context.Context) error {
	habitats, err := c.api.ListHabitats(ctx)
	if err != nil {
		c.items = nil
		return err
	}
	c.items = habitats
	return nil
}

func (c *HabitatCollection) Items() []domain.Habitat {
	return c.items
}

func (c *HabitatCollection) Get(id string) (*domain.Habitat, bool) {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i], true
		}
	}
	return nil, false
}

// Create pre-checks id uniqueness locally before the backend sees the
// request.
func (c *HabitatCollection) Create(ctx context.Context, habitat domain.Habitat) (*domain.Habitat, error) {
	if _, exists := c.Get(habitat.ID); exists {
		return nil, fmt.Errorf("%w: habitat %s", domain.ErrDuplicateID, habitat.ID)
	}

	created, err := c.api.CreateHabitat(ctx, habitat)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, *created)
	return created, nil
}

func (c *HabitatCollection) Update(ctx context.Context, id string, habitat domain.Habitat) (*domain.Habitat, error) {
	updated, err := c.api.UpdateHabitat(ctx, id, habitat)
	if err != nil {
		return nil, err
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i] = *updated
			break
		}
	}
	return updated, nil
}

// Delete refuses locally, without any backend call, when an animal still
// references the habitat. The authoritative linkage is Animal.HabitatID,
// so the caller supplies the currently loaded animals.
func (c *HabitatCollection) Delete(ctx context.Context, id string, animals []domain.Animal) error {
	for _, a := range animals {
		if a.HabitatID == id {
			return fmt.Errorf("%w: habitat %s", domain.ErrReferentialDeleteBlocked, id)
		}
	}

	if err := c.api.DeleteHabitat(ctx, id); err != nil {
		return err
	}
	c.items = removeByID(c.items, id, func(h domain.Habitat) string { return h.ID })
	return nil
}
