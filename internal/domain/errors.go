package domain

import "errors"

// Error taxonomy recovered at the handler boundary. Handlers translate these
// into flash messages or redirects; none of them ever escapes as a crash.
var (
	// ErrInvalidCredentials is a rejected login. Deliberately generic: the
	// user cannot tell unknown-user from wrong-password apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRegistrationFailed is a rejected registration (e.g. duplicate
	// username).
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrDuplicateID is a create rejected by the backend with 409, or
	// pre-empted by the local uniqueness check before any call is made.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrProfileNotFound means a CARETAKER session has no linked caretaker
	// record; the animal list cannot be populated.
	ErrProfileNotFound = errors.New("caretaker profile not found")

	// ErrReferentialDeleteBlocked is a delete refused locally because
	// dependent animals exist. The backend is never called.
	ErrReferentialDeleteBlocked = errors.New("delete blocked: dependent animals exist")

	// ErrUnauthorized is a backend 401: the stored credential is expired or
	// invalid and the session must be destroyed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is a backend 404.
	ErrNotFound = errors.New("not found")

	// ErrNoSession is returned by the session store when no session exists
	// for the presented cookie.
	ErrNoSession = errors.New("no session")
)
