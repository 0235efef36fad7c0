package service

import (
	"errors"
	"testing"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

func TestHabitatCreateDuplicateIDTwice(t *testing.T) {
	backend := newMemBackend()
	habitats := NewHabitatCollection(backend, nil)
	if err := habitats.Load(managerCtx()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := habitats.Create(managerCtx(), domain.Habitat{ID: "SAV001", Name: "Savannah"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := habitats.Create(managerCtx(), domain.Habitat{ID: "SAV001", Name: "Savannah Copy"})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	count := 0
	for _, h := range habitats.Items() {
		if h.ID == "SAV001" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one SAV001, got %d", count)
	}
	if backend.called("CreateHabitat") != 1 {
		t.Errorf("second create must not reach the backend, saw %d calls", backend.called("CreateHabitat"))
	}
}

func TestHabitatDeleteBlockedByAnimals(t *testing.T) {
	backend := newMemBackend()
	backend.habitats["H1"] = domain.Habitat{ID: "H1", Name: "Savannah"}

	habitats := NewHabitatCollection(backend, nil)
	if err := habitats.Load(managerCtx()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	animals := []domain.Animal{{ID: "A1", HabitatID: "H1"}}
	err := habitats.Delete(managerCtx(), "H1", animals)
	if !errors.Is(err, domain.ErrReferentialDeleteBlocked) {
		t.Fatalf("expected ErrReferentialDeleteBlocked, got %v", err)
	}
	if backend.called("DeleteHabitat") != 0 {
		t.Error("blocked delete must never reach the backend")
	}
	if _, ok := habitats.Get("H1"); !ok {
		t.Error("blocked delete must leave the habitat in place")
	}
}

func TestHabitatDeleteSucceedsWhenEmpty(t *testing.T) {
	backend := newMemBackend()
	backend.habitats["H1"] = domain.Habitat{ID: "H1"}

	habitats := NewHabitatCollection(backend, nil)
	if err := habitats.Load(managerCtx()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := habitats.Delete(managerCtx(), "H1", nil); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := habitats.Get("H1"); ok {
		t.Error("habitat not removed after delete")
	}
}

func TestHabitatUpdateReplacesByID(t *testing.T) {
	backend := newMemBackend()
	backend.habitats["H1"] = domain.Habitat{ID: "H1", Name: "Savannah", Area: 100}

	habitats := NewHabitatCollection(backend, nil)
	if err := habitats.Load(managerCtx()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := habitats.Update(managerCtx(), "H1", domain.Habitat{ID: "H1", Name: "Savannah", Area: 250}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := habitats.Get("H1")
	if got.Area != 250 {
		t.Errorf("expected area 250, got %v", got.Area)
	}
}
