package domain

import "context"

// HealthStatus is the health classification shown on the animals table
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "Healthy"
	HealthSick     HealthStatus = "Sick"
	HealthCritical HealthStatus = "Critical"
)

// Animal represents a sanctuary animal. IDs are caller-supplied and immutable
// once created; uniqueness is enforced client-side and by the backend (409).
type Animal struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Species      string       `json:"species"`
	HabitatID    string       `json:"habitatId"`
	DateOfBirth  string       `json:"dateOfBirth"`
	HealthStatus HealthStatus `json:"healthStatus"`
	CaretakerID  string       `json:"caretakerId"`
	Description  string       `json:"description"`
}

// Habitat represents an enclosure. AnimalIDs is derived membership; the
// authoritative linkage is Animal.HabitatID.
type Habitat struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Area        float64  `json:"area"`
	Climate     string   `json:"climate"`
	AnimalIDs   []string `json:"animalIds"`
}

// Caretaker is a staff record. The ID is server-generated; UserID links to
// the authentication identity provisioned alongside the record.
type Caretaker struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	PhoneNumber       string   `json:"phoneNumber"`
	Specialization    string   `json:"specialization"`
	UserID            string   `json:"userId"`
	AssignedAnimalIDs []string `json:"assignedAnimalIds"`
}

// Specializations is the fixed set offered on the caretaker form.
var Specializations = []string{
	"Large Mammals",
	"Small Mammals",
	"Birds",
	"Reptiles",
	"Amphibians",
	"Marine Animals",
	"Veterinary",
}

// Statistics is the dashboard summary returned by /home/statistics.
type Statistics struct {
	TotalAnimals    int `json:"totalAnimals"`
	TotalHabitats   int `json:"totalHabitats"`
	TotalCaretakers int `json:"totalCaretakers"`
}

// AuthResult is the backend's response to login and register calls.
type AuthResult struct {
	Token    string `json:"token"`
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// RegisterRequest provisions a new authentication identity.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// SanctuaryAPI defines the backend REST surface the console consumes.
// Every call is a single attempt; the bearer credential is taken from the
// session carried in the context, when one is present.
type SanctuaryAPI interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)

	ListAnimals(ctx context.Context) ([]Animal, error)
	ListAnimalsByCaretaker(ctx context.Context, caretakerID string) ([]Animal, error)
	GetAnimal(ctx context.Context, id string) (*Animal, error)
	CreateAnimal(ctx context.Context, animal Animal) (*Animal, error)
	UpdateAnimal(ctx context.Context, id string, animal Animal) (*Animal, error)
	DeleteAnimal(ctx context.Context, id string) error

	ListHabitats(ctx context.Context) ([]Habitat, error)
	GetHabitat(ctx context.Context, id string) (*Habitat, error)
	CreateHabitat(ctx context.Context, habitat Habitat) (*Habitat, error)
	UpdateHabitat(ctx context.Context, id string, habitat Habitat) (*Habitat, error)
	DeleteHabitat(ctx context.Context, id string) error

	ListCaretakers(ctx context.Context) ([]Caretaker, error)
	GetCaretaker(ctx context.Context, id string) (*Caretaker, error)
	GetCaretakerByUser(ctx context.Context, userID string) (*Caretaker, error)
	CreateCaretaker(ctx context.Context, caretaker Caretaker) (*Caretaker, error)
	UpdateCaretaker(ctx context.Context, id string, caretaker Caretaker) (*Caretaker, error)
	DeleteCaretaker(ctx context.Context, id string) error

	Statistics(ctx context.Context) (*Statistics, error)
}
