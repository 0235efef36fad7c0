// Package viewmodel computes read-only projections over the loaded
// collections. Everything here is a pure function recomputed per render;
// nothing holds state, so the projections cannot drift from the
// collections they are derived from.
package viewmodel

import "github.com/yourorg/sanctuaryconsole/internal/domain"

// UnknownLabel is shown when a referenced entity is absent from the loaded
// collections. A dangling foreign key renders this instead of failing.
const UnknownLabel = "Unknown"

// AnimalCountByHabitat counts animals currently assigned to the habitat.
func AnimalCountByHabitat(animals []domain.Animal, habitatID string) int {
	count := 0
	for _, a := range animals {
		if a.HabitatID == habitatID {
			count++
		}
	}
	return count
}

// AnimalCountByCaretaker counts animals currently assigned to the caretaker.
func AnimalCountByCaretaker(animals []domain.Animal, caretakerID string) int {
	count := 0
	for _, a := range animals {
		if a.CaretakerID == caretakerID {
			count++
		}
	}
	return count
}

// HabitatNameFor resolves the animal's habitat name, falling back to
// UnknownLabel when the habitat is not in the loaded set.
func HabitatNameFor(habitats []domain.Habitat, animal domain.Animal) string {
	for _, h := range habitats {
		if h.ID == animal.HabitatID {
			return h.Name
		}
	}
	return UnknownLabel
}

// CaretakerNameFor resolves the animal's caretaker name, falling back to
// UnknownLabel when the caretaker is not in the loaded set.
func CaretakerNameFor(caretakers []domain.Caretaker, animal domain.Animal) string {
	for _, c := range caretakers {
		if c.ID == animal.CaretakerID {
			return c.Name
		}
	}
	return UnknownLabel
}
