package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error taxonomy shared by all registries. Every error is terminal for
// the current operation; nothing is retried.
var (
	// ErrUnauthenticated: no session context on a guarded operation.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials: login mismatch. Deliberately generic so a
	// caller cannot probe which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDenied: policy refused the operation; no state was changed.
	ErrDenied = errors.New("operation not allowed")
	// ErrDuplicate: username or email collision at registration.
	ErrDuplicate = errors.New("username or email already taken")
	// ErrNotFound: resource id absent where the operation must surface it
	// (reads). Deletes treat a missing id as a silent no-op instead.
	ErrNotFound = errors.New("not found")
	// ErrStorage: a collaborator (database or blob store) failed; the
	// operation aborted with no partial commit.
	ErrStorage = errors.New("storage failure")
)

// ValidationError reports missing or malformed required fields, keyed by
// field name. Surfaced verbatim to the caller.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
