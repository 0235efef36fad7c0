package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

func TestAnimalCounts(t *testing.T) {
	animals := []domain.Animal{
		{ID: "A1", HabitatID: "H1", CaretakerID: "c1"},
		{ID: "A2", HabitatID: "H1", CaretakerID: "c2"},
		{ID: "A3", HabitatID: "H2", CaretakerID: "c1"},
	}

	assert.Equal(t, 2, AnimalCountByHabitat(animals, "H1"))
	assert.Equal(t, 1, AnimalCountByHabitat(animals, "H2"))
	assert.Equal(t, 0, AnimalCountByHabitat(animals, "H3"))

	assert.Equal(t, 2, AnimalCountByCaretaker(animals, "c1"))
	assert.Equal(t, 1, AnimalCountByCaretaker(animals, "c2"))
	assert.Equal(t, 0, AnimalCountByCaretaker(animals, "missing"))
}

func TestNameLookups(t *testing.T) {
	habitats := []domain.Habitat{{ID: "H1", Name: "Savannah"}}
	caretakers := []domain.Caretaker{{ID: "c1", Name: "Bob"}}

	assert.Equal(t, "Savannah", HabitatNameFor(habitats, domain.Animal{HabitatID: "H1"}))
	assert.Equal(t, "Bob", CaretakerNameFor(caretakers, domain.Animal{CaretakerID: "c1"}))
}

func TestNameLookupFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, UnknownLabel, HabitatNameFor(nil, domain.Animal{HabitatID: "H9"}))
	assert.Equal(t, UnknownLabel, CaretakerNameFor(nil, domain.Animal{CaretakerID: "c9"}))
	assert.Equal(t, UnknownLabel, HabitatNameFor([]domain.Habitat{{ID: "H1", Name: "Savannah"}}, domain.Animal{HabitatID: "H2"}))
}
