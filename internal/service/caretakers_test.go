package service

import (
	"errors"
	"testing"

	"github.com/yourorg/sanctuaryconsole/internal/domain"
)

func TestCaretakerCreateProvisionsIdentityThenRecord(t *testing.T) {
	backend := newMemBackend()
	caretakers := NewCaretakerCollection(backend, nil)
	if err := caretakers.Load(managerCtx()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	created, err := caretakers.Create(managerCtx(), domain.Caretaker{
		Name: "Bob", Email: "bob@sanctuary.example", Specialization: "Birds",
	}, "bob", "secret123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.UserID == "" {
		t.Error("record must be linked to the provisioned identity")
	}
	identity := backend.users["bob"]
	if identity.Role != domain.RoleCaretaker {
		t.Errorf("identity role must be CARETAKER, got %s", identity.Role)
	}
	if created.UserID != identity.UserID {
		t.Errorf("userId mismatch: record %s, identity %s", created.UserID, identity.UserID)
	}
	if len(caretakers.Items()) != 1 {
		t.Errorf("expected 1 caretaker after create, got %d", len(caretakers.Items()))
	}
}

func TestCaretakerCreateIdentityFailureSkipsRecord(t *testing.T) {
	backend := newMemBackend()
	backend.users["bob"] = domain.AuthResult{UserID: "u1", Username: "bob", Role: domain.RoleCaretaker}

	caretakers := NewCaretakerCollection(backend, nil)
	_, err := caretakers.Create(managerCtx(), domain.Caretaker{Name: "Bob"}, "bob", "secret123")
	if !errors.Is(err, domain.ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
	if backend.called("CreateCaretaker") != 0 {
		t.Error("record creation must not run when identity provisioning fails")
	}
}

func TestCaretakerCreateRecordFailureLeavesIdentityOrphaned(t *testing.T) {
	backend := newMemBackend()
	backend.fail["CreateCaretaker"] = errors.New("backend rejected record")

	caretakers := NewCaretakerCollection(backend, nil)
	_, err := caretakers.Create(managerCtx(), domain.Caretaker{Name: "Bob"}, "bob", "secret123")
	if err == nil {
		t.Fatal("expected create error")
	}
	// No compensating rollback: the identity stays behind.
	if _, exists := backend.users["bob"]; !exists {
		t.Error("provisioned identity should remain after record failure")
	}
	if len(caretakers.Items()) != 0 {
		t.Error("failed create must not appear in the collection")
	}
}

func TestCaretakerDeleteBlockedByAssignedAnimals(t *testing.T) {
	backend := newMemBackend()
	backend.caretakers["c1"] = domain.Caretaker{ID: "c1", Name: "Bob"}

	caretakers := NewCaretakerCollection(backend, nil)
	if err := caretakers.Load(managerCtx()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	animals := []domain.Animal{{ID: "A1", CaretakerID: "c1"}}
	err := caretakers.Delete(managerCtx(), "c1", animals)
	if !errors.Is(err, domain.ErrReferentialDeleteBlocked) {
		t.Fatalf("expected ErrReferentialDeleteBlocked, got %v", err)
	}
	if backend.called("DeleteCaretaker") != 0 {
		t.Error("blocked delete must never reach the backend")
	}
}

func TestCaretakerDeleteSucceedsWhenUnassigned(t *testing.T) {
	backend := newMemBackend()
	backend.caretakers["c1"] = domain.Caretaker{ID: "c1"}

	caretakers := NewCaretakerCollection(backend, nil)
	if err := caretakers.Load(managerCtx()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := caretakers.Delete(managerCtx(), "c1", []domain.Animal{{ID: "A1", CaretakerID: "c2"}}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := caretakers.Get("c1"); ok {
		t.Error("caretaker not removed after delete")
	}
}
