package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// AnimalCollection holds the currently loaded set of animals and applies
// local reconciliation after each mutating call, so a view never needs a
// full re-fetch after create, update, or delete.
type AnimalCollection struct {
	api    domain.SanctuaryAPI
	logger *slog.Logger
	items  []domain.Animal
}

// NewAnimalCollection creates an empty collection bound to the backend.
func NewAnimalCollection(api domain.SanctuaryAPI, logger *slog.Logger) *AnimalCollection {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnimalCollection{api: api, logger: logger}
}

// Load populates the collection, scoped by the session carried in the
// context. A CARETAKER session is resolved to its caretaker record first
// and only that caretaker's animals are fetched; a missing record yields
// ErrProfileNotFound and the collection stays empty. A MANAGER session
// fetches everything.
func (c *AnimalCollection) Load(ctx context.Context) error {
	sess := domain.SessionFromContext(ctx)
	if sess != nil && sess.Role == domain.RoleCaretaker {
		profile, err := c.api.GetCaretakerByUser(ctx, sess.UserID)
		if err != nil {
			c.items = nil
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: user %s", domain.ErrProfileNotFound, sess.UserID)
			}
			return err
		}

		animals, err := c.api.ListAnimalsByCaretaker(ctx, profile.ID)
		if err != nil {
			c.items = nil
			return err
		}
		c.items = animals
		return nil
	}

	animals, err := c.api.ListAnimals(ctx)
	if err != nil {
		c.items = nil
		return err
	}
	c.items = animals
	return nil
}

// Items returns the currently loaded animals.
func (c *AnimalCollection) Items() []domain.Animal {
	return c.items
}

// Get returns the loaded animal with the given id, if present.
func (c *AnimalCollection) Get(id string) (*domain.Animal, bool) {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i], true
		}
	}
	return nil, false
}

// Create pre-checks id uniqueness against the loaded set before calling the
// backend. On success the returned entity is appended; on rejection local
// state is untouched.
func (c *AnimalCollection) Create(ctx context.Context, animal domain.Animal) (*domain.Animal, error) {
	if _, exists := c.Get(animal.ID); exists {
		return nil, fmt.Errorf("%w: animal %s", domain.ErrDuplicateID, animal.ID)
	}

	created, err := c.api.CreateAnimal(ctx, animal)
	if err != nil {
		return nil, err
	}
	c.items = append(c.items, *created)
	return created, nil
}

// Update replaces the matching entity by id after backend confirmation.
// The loaded set is never mutated optimistically.
func (c *AnimalCollection) Update(ctx context.Context, id string, animal domain.Animal) (*domain.Animal, error) {
	updated, err := c.api.UpdateAnimal(ctx, id, animal)
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

// Delete removes the animal on backend success.
func (c *AnimalCollection) Delete(ctx context.Context, id string) error {
	if err := c.api.DeleteAnimal(ctx, id); err != nil {
		return err
	}
	c.items = removeByID(c.items, id, func(a domain.Animal) string { return a.ID })
	return nil
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}
