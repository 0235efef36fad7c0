package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return New(server.URL, nil)
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"nope"}`))
	}
}

func TestConflictMapsToDuplicateID(t *testing.T) {
	client := newTestClient(t, statusHandler(http.StatusConflict))

	_, err := client.CreateAnimal(context.Background(), domain.Animal{ID: "SAV001"})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID from a 409, got %v", err)
	}
}

func TestUnauthorizedMapsToErrUnauthorized(t *testing.T) {
	client := newTestClient(t, statusHandler(http.StatusUnauthorized))

	_, err := client.ListAnimals(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized from a 401, got %v", err)
	}
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	client := newTestClient(t, statusHandler(http.StatusNotFound))

	_, err := client.GetAnimal(context.Background(), "SAV404")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound from a 404, got %v", err)
	}
}

func TestAPIErrorCarriesStatus(t *testing.T) {
	client := newTestClient(t, statusHandler(http.StatusBadGateway))

	err := client.DeleteHabitat(context.Background(), "h-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.StatusCode)
	}
	if errors.Is(err, domain.ErrDuplicateID) || errors.Is(err, domain.ErrUnauthorized) {
		t.Error("a 502 must not satisfy any of the 4xx sentinels")
	}
}

func TestLoginClientErrorsMapToInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
		client := newTestClient(t, statusHandler(status))
		_, err := client.Login(context.Background(), "warden", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("status %d: expected ErrInvalidCredentials, got %v", status, err)
		}
	}
}

func TestLoginServerErrorStaysDistinct(t *testing.T) {
	client := newTestClient(t, statusHandler(http.StatusInternalServerError))

	_, err := client.Login(context.Background(), "warden", "secret")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("a 500 is an outage, not a credential rejection: %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	client := newTestClient(t, statusHandler(http.StatusConflict))

	_, err := client.Register(context.Background(), domain.RegisterRequest{Username: "warden"})
	if !errors.Is(err, domain.ErrRegistrationFailed) {
		t.Errorf("expected ErrRegistrationFailed, got %v", err)
	}
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("a 409 registration should also satisfy ErrDuplicateID, got %v", err)
	}
}

func TestBearerAttachedFromSession(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	ctx := domain.WithSession(context.Background(), &domain.Session{Token: "tok-abc"})
	if _, err := client.ListAnimals(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("expected the session token as bearer, got %q", gotAuth)
	}
}

func TestNoBearerWithoutSession(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	if _, err := client.ListHabitats(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}
