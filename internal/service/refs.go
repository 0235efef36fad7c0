package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// References bundles the lookup collections an animal form depends on.
type References struct {
	Habitats   []domain.Habitat
	Caretakers []domain.Caretaker
}

// LoadReferences fetches habitats and caretakers concurrently. The join is
// all-or-nothing: if either fetch fails, the form is not rendered and no
// partial result is returned.
func LoadReferences(ctx context.Context, api domain.SanctuaryAPI) (*References, error) {
	var refs References

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		habitats, err := api.ListHabitats(ctx)
		if err != nil {
			return err
		}
		refs.Habitats = habitats
		return nil
	})
	g.Go(func() error {
		caretakers, err := api.ListCaretakers(ctx)
		if err != nil {
			return err
		}
		refs.Caretakers = caretakers
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &refs, nil
}
