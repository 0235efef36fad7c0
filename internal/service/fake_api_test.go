package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

// memBackend is an in-memory stand-in for the sanctuary backend. It records
// which calls were issued so tests can assert that local guards short-circuit
// before the network.
type memBackend struct {
	animals    map[string]domain.Animal
	habitats   map[string]domain.Habitat
	caretakers map[string]domain.Caretaker
	users      map[string]domain.AuthResult

	calls []string
	fail  map[string]error
	seq   int
}

func newMemBackend() *memBackend {
	return &memBackend{
		animals:    map[string]domain.Animal{},
		habitats:   map[string]domain.Habitat{},
		caretakers: map[string]domain.Caretaker{},
		users:      map[string]domain.AuthResult{},
		fail:       map[string]error{},
	}
}

func (m *memBackend) record(call string) error {
	m.calls = append(m.calls, call)
	return m.fail[call]
}

func (m *memBackend) called(call string) int {
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *memBackend) nextID(prefix string) string {
	m.seq++
	return prefix + strconv.Itoa(m.seq)
}

func (m *memBackend) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if err := m.record("Login"); err != nil {
		return nil, err
	}
	u, ok := m.users[username]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return &u, nil
}

func (m *memBackend) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	if err := m.record("Register"); err != nil {
		return nil, err
	}
	if _, exists := m.users[req.Username]; exists {
		return nil, domain.ErrRegistrationFailed
	}
	u := domain.AuthResult{Token: "tok-" + req.Username, UserID: m.nextID("u"), Username: req.Username, Role: req.Role}
	m.users[req.Username] = u
	return &u, nil
}

func (m *memBackend) ListAnimals(ctx context.Context) ([]domain.Animal, error) {
	if err := m.record("ListAnimals"); err != nil {
		return nil, err
	}
	out := make([]domain.Animal, 0, len(m.animals))
	for _, a := range m.animals {
		out = append(out, a)
	}
	return out, nil
}

func (m *memBackend) ListAnimalsByCaretaker(ctx context.Context, caretakerID string) ([]domain.Animal, error) {
	if err := m.record("ListAnimalsByCaretaker"); err != nil {
		return nil, err
	}
	var out []domain.Animal
	for _, a := range m.animals {
		if a.CaretakerID == caretakerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memBackend) GetAnimal(ctx context.Context, id string) (*domain.Animal, error) {
	if err := m.record("GetAnimal"); err != nil {
		return nil, err
	}
	a, ok := m.animals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memBackend) CreateAnimal(ctx context.Context, animal domain.Animal) (*domain.Animal, error) {
	if err := m.record("CreateAnimal"); err != nil {
		return nil, err
	}
	if _, exists := m.animals[animal.ID]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateID, animal.ID)
	}
	m.animals[animal.ID] = animal
	return &animal, nil
}

func (m *memBackend) UpdateAnimal(ctx context.Context, id string, animal domain.Animal) (*domain.Animal, error) {
	if err := m.record("UpdateAnimal"); err != nil {
		return nil, err
	}
	if _, ok := m.animals[id]; !ok {
		return nil, domain.ErrNotFound
	}
	animal.ID = id
	m.animals[id] = animal
	return &animal, nil
}

func (m *memBackend) DeleteAnimal(ctx context.Context, id string) error {
	if err := m.record("DeleteAnimal"); err != nil {
		return err
	}
	delete(m.animals, id)
	return nil
}

func (m *memBackend) ListHabitats(ctx context.Context) ([]domain.Habitat, error) {
	if err := m.record("ListHabitats"); err != nil {
		return nil, err
	}
	out := make([]domain.Habitat, 0, len(m.habitats))
	for _, h := range m.habitats {
		out = append(out, h)
	}
	return out, nil
}

func (m *memBackend) GetHabitat(ctx context.Context, id string) (*domain.Habitat, error) {
	if err := m.record("GetHabitat"); err != nil {
		return nil, err
	}
	h, ok := m.habitats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (m *memBackend) CreateHabitat(ctx context.Context, habitat domain.Habitat) (*domain.Habitat, error) {
	if err := m.record("CreateHabitat"); err != nil {
		return nil, err
	}
	if _, exists := m.habitats[habitat.ID]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateID, habitat.ID)
	}
	m.habitats[habitat.ID] = habitat
	return &habitat, nil
}

func (m *memBackend) UpdateHabitat(ctx context.Context, id string, habitat domain.Habitat) (*domain.Habitat, error) {
	if err := m.record("UpdateHabitat"); err != nil {
		return nil, err
	}
	if _, ok := m.habitats[id]; !ok {
		return nil, domain.ErrNotFound
	}
	habitat.ID = id
	m.habitats[id] = habitat
	return &habitat, nil
}

func (m *memBackend) DeleteHabitat(ctx context.Context, id string) error {
	if err := m.record("DeleteHabitat"); err != nil {
		return err
	}
	delete(m.habitats, id)
	return nil
}

func (m *memBackend) ListCaretakers(ctx context.Context) ([]domain.Caretaker, error) {
	if err := m.record("ListCaretakers"); err != nil {
		return nil, err
	}
	out := make([]domain.Caretaker, 0, len(m.caretakers))
	for _, c := range m.caretakers {
		out = append(out, c)
	}
	return out, nil
}

func (m *memBackend) GetCaretaker(ctx context.Context, id string) (*domain.Caretaker, error) {
	if err := m.record("GetCaretaker"); err != nil {
		return nil, err
	}
	c, ok := m.caretakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *memBackend) GetCaretakerByUser(ctx context.Context, userID string) (*domain.Caretaker, error) {
	if err := m.record("GetCaretakerByUser"); err != nil {
		return nil, err
	}
	for _, c := range m.caretakers {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memBackend) CreateCaretaker(ctx context.Context, caretaker domain.Caretaker) (*domain.Caretaker, error) {
	if err := m.record("CreateCaretaker"); err != nil {
		return nil, err
	}
	caretaker.ID = m.nextID("c")
	m.caretakers[caretaker.ID] = caretaker
	return &caretaker, nil
}

func (m *memBackend) UpdateCaretaker(ctx context.Context, id string, caretaker domain.Caretaker) (*domain.Caretaker, error) {
	if err := m.record("UpdateCaretaker"); err != nil {
		return nil, err
	}
	if _, ok := m.caretakers[id]; !ok {
		return nil, domain.ErrNotFound
	}
	caretaker.ID = id
	m.caretakers[id] = caretaker
	return &caretaker, nil
}

func (m *memBackend) DeleteCaretaker(ctx context.Context, id string) error {
	if err := m.record("DeleteCaretaker"); err != nil {
		return err
	}
	delete(m.caretakers, id)
	return nil
}

func (m *memBackend) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if err := m.record("Statistics"); err != nil {
		return nil, err
	}
	return &domain.Statistics{
		TotalAnimals:    len(m.animals),
		TotalHabitats:   len(m.habitats),
		TotalCaretakers: len(m.caretakers),
	}, nil
}
