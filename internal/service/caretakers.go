package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// CaretakerCollection holds the currently loaded caretaker records.
// Caretaker ids are server-generated, so create performs no local
// uniqueness pre-check.
type CaretakerCollection struct {
	api    domain.SanctuaryAPI
	logger *slog.Logger
	items  []domain.Caretaker
}

func NewCaretakerCollection(api domain.SanctuaryAPI, logger *slog.Logger) *CaretakerCollection {
	if logger == nil {
		logger = slog.Default()
	}
	return &CaretakerCollection{api: api, logger: logger}
}

func (c *CaretakerCollection) Load(ctx context.Context) error {
	caretakers, err := c.api.ListCaretakers(ctx)
	if err != nil {
		c.items = nil
		return err
	}
	c.items = caretakers
	return nil
}

func (c *CaretakerCollection) Items() []domain.Caretaker {
	return c.items
}

func (c *CaretakerCollection) Get(id string) (*domain.Caretaker, bool) {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i], true
		}
	}
	return nil, false
}

// Create is a compound operation: it first provisions a CARETAKER
// authentication identity, then creates the caretaker record linked to it
// via userId. There is no compensating rollback; if the second step fails
// the orphaned identity is logged and left for an operator to clean up.
func (c *CaretakerCollection) Create(ctx context.Context, caretaker domain.Caretaker, username, password string) (*domain.Caretaker, error) {
	identity, err := c.api.Register(ctx, domain.RegisterRequest{
		Username: username,
		Password: password,
		Email:    caretaker.Email,
		Role:     domain.RoleCaretaker,
	})
	if err != nil {
		return nil, err
	}

	caretaker.UserID = identity.UserID
	created, err := c.api.CreateCaretaker(ctx, caretaker)
	if err != nil {
		c.logger.Warn("caretaker record creation failed after identity was provisioned",
			slog.String("user_id", identity.UserID),
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.items = append(c.items, *created)
	return created, nil
}

func (c *CaretakerCollection) Update(ctx context.Context, id string, caretaker domain.Caretaker) (*domain.Caretaker, error) {
	updated, err := c.api.UpdateCaretaker(ctx, id, caretaker)
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

// Delete refuses locally when an animal is still assigned to the
// caretaker; the backend is never called in that case.
func (c *CaretakerCollection) Delete(ctx context.Context, id string, animals []domain.Animal) error {
	for _, a := range animals {
		if a.CaretakerID == id {
			return fmt.Errorf("%w: caretaker %s", domain.ErrReferentialDeleteBlocked, id)
		}
	}

	if err := c.api.DeleteCaretaker(ctx, id); err != nil {
		return err
	}
	c.items = removeByID(c.items, id, func(ct domain.Caretaker) string { return ct.ID })
	return nil
}
