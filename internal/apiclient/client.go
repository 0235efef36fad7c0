package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
	"github.com/yourorg/sanctuaryconsole/internal/observability/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIError carries the backend's HTTP status for a failed call. Unwrap maps
// well-known statuses onto the domain error taxonomy so callers can use
// errors.Is without inspecting codes.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusConflict:
		return domain.ErrDuplicateID
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// Client performs CRUD calls against the sanctuary backend. Each method makes
// exactly one attempt; retry policy belongs to the caller and none is
// implemented. The bearer credential is read from the session carried in the
// request context, when one is present.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a backend client. baseURL includes the /api prefix.
func New(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

func (c *Client) do(ctx context.Context, method, path, resource string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess := domain.SessionFromContext(ctx); sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveAPICall(resource, method, "transport_error", time.Since(start))
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.ObserveAPICall(resource, method, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       strings.TrimSpace(string(raw)),
		}
		c.logger.Debug("backend call failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Login exchanges credentials for a bearer token. A 400/401/403 response is
// reported as ErrInvalidCredentials without distinguishing the cause.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	payload := map[string]string{"username": username, "password": password}
	var result domain.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "auth", payload, &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			return nil, fmt.Errorf("%w: status %d", domain.ErrInvalidCredentials, apiErr.StatusCode)
		}
		return nil, err
	}
	return &result, nil
}

// Register provisions a new authentication identity. Client errors map to
// ErrRegistrationFailed; a 409 additionally satisfies errors.Is(err,
// ErrDuplicateID) so compound flows can show the specific message.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	var result domain.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "auth", req, &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			if apiErr.StatusCode == http.StatusConflict {
				return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, apiErr)
			}
			return nil, fmt.Errorf("%w: status %d", domain.ErrRegistrationFailed, apiErr.StatusCode)
		}
		return nil, err
	}
	return &result, nil
}

// ListAnimals fetches all animals, unscoped.
func (c *Client) ListAnimals(ctx context.Context) ([]domain.Animal, error) {
	var animals []domain.Animal
	if err := c.do(ctx, http.MethodGet, "/animals", "animals", nil, &animals); err != nil {
		return nil, err
	}
	return animals, nil
}

// ListAnimalsByCaretaker fetches the animals assigned to one caretaker.
func (c *Client) ListAnimalsByCaretaker(ctx context.Context, caretakerID string) ([]domain.Animal, error) {
	var animals []domain.Animal
	path := "/animals/caretaker/" + url.PathEscape(caretakerID)
	if err := c.do(ctx, http.MethodGet, path, "animals", nil, &animals); err != nil {
		return nil, err
	}
	return animals, nil
}

func (c *Client) GetAnimal(ctx context.Context, id string) (*domain.Animal, error) {
	var animal domain.Animal
	if err := c.do(ctx, http.MethodGet, "/animals/"+url.PathEscape(id), "animals", nil, &animal); err != nil {
		return nil, err
	}
	return &animal, nil
}

func (c *Client) CreateAnimal(ctx context.Context, animal domain.Animal) (*domain.Animal, error) {
	var created domain.Animal
	if err := c.do(ctx, http.MethodPost, "/animals", "animals", animal, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateAnimal(ctx context.Context, id string, animal domain.Animal) (*domain.Animal, error) {
	var updated domain.Animal
	if err := c.do(ctx, http.MethodPut, "/animals/"+url.PathEscape(id), "animals", animal, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAnimal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/animals/"+url.PathEscape(id), "animals", nil, nil)
}

func (c *Client) ListHabitats(ctx context.Context) ([]domain.Habitat, error) {
	var habitats []domain.Habitat
	if err := c.do(ctx, http.MethodGet, "/habitats", "habitats", nil, &habitats); err != nil {
		return nil, err
	}
	return habitats, nil
}

func (c *Client) GetHabitat(ctx context.Context, id string) (*domain.Habitat, error) {
	var habitat domain.Habitat
	if err := c.do(ctx, http.MethodGet, "/habitats/"+url.PathEscape(id), "habitats", nil, &habitat); err != nil {
		return nil, err
	}
	return &habitat, nil
}

func (c *Client) CreateHabitat(ctx context.Context, habitat domain.Habitat) (*domain.Habitat, error) {
	var created domain.Habitat
	if err := c.do(ctx, http.MethodPost, "/habitats", "habitats", habitat, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateHabitat(ctx context.Context, id string, habitat domain.Habitat) (*domain.Habitat, error) {
	var updated domain.Habitat
	if err := c.do(ctx, http.MethodPut, "/habitats/"+url.PathEscape(id), "habitats", habitat, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteHabitat(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/habitats/"+url.PathEscape(id), "habitats", nil, nil)
}

func (c *Client) ListCaretakers(ctx context.Context) ([]domain.Caretaker, error) {
	var caretakers []domain.Caretaker
	if err := c.do(ctx, http.MethodGet, "/caretakers", "caretakers", nil, &caretakers); err != nil {
		return nil, err
	}
	return caretakers, nil
}

func (c *Client) GetCaretaker(ctx context.Context, id string) (*domain.Caretaker, error) {
	var caretaker domain.Caretaker
	if err := c.do(ctx, http.MethodGet, "/caretakers/"+url.PathEscape(id), "caretakers", nil, &caretaker); err != nil {
		return nil, err
	}
	return &caretaker, nil
}

// GetCaretakerByUser resolves the caretaker record linked to an
// authentication identity.
func (c *Client) GetCaretakerByUser(ctx context.Context, userID string) (*domain.Caretaker, error) {
	var caretaker domain.Caretaker
	path := "/caretakers/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, "caretakers", nil, &caretaker); err != nil {
		return nil, err
	}
	return &caretaker, nil
}

func (c *Client) CreateCaretaker(ctx context.Context, caretaker domain.Caretaker) (*domain.Caretaker, error) {
	var created domain.Caretaker
	if err := c.do(ctx, http.MethodPost, "/caretakers", "caretakers", caretaker, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCaretaker(ctx context.Context, id string, caretaker domain.Caretaker) (*domain.Caretaker, error) {
	var updated domain.Caretaker
	if err := c.do(ctx, http.MethodPut, "/caretakers/"+url.PathEscape(id), "caretakers", caretaker, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCaretaker(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/caretakers/"+url.PathEscape(id), "caretakers", nil, nil)
}

// Statistics fetches the dashboard totals.
func (c *Client) Statistics(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if err := c.do(ctx, http.MethodGet, "/home/statistics", "statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
