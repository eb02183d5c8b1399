package docker

import (
	"errors"

	"github.com/docker/docker/errdefs"
)

// Lifecycle operations surface three well-known conditions as typed errors so
// callers can classify outcomes with errors.Is/errors.As instead of inspecting
// daemon status codes or matching message text.
var (
	// ErrNotFound means the named container or image does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrResourceInUse means the daemon refused the operation because the
	// resource is busy (running container without force, image referenced
	// by a container, ...).
	ErrResourceInUse = errors.New("resource in use")
)

// StateError reports that the resource was already in the requested state
// before the call was made (already stopped, already running).
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }

// IsNotFound reports whether err (or anything it wraps) is ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsResourceInUse reports whether err (or anything it wraps) is ErrResourceInUse.
func IsResourceInUse(err error) bool { return errors.Is(err, ErrResourceInUse) }

// IsAlreadyInDesiredState reports whether err carries a StateError.
func IsAlreadyInDesiredState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// StateReason returns the reason attached to a StateError, or "" when err is
// not one.
func StateReason(err error) string {
	var se *StateError
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}

// translateAPIError maps a Docker daemon error onto the typed errors above.
// alreadyReason is the StateError reason used when the daemon answers 304
// (Not Modified). Unknown errors pass through unchanged.
func translateAPIError(err error, alreadyReason string) error {
	switch {
	case err == nil:
		return nil
	case errdefs.IsNotFound(err):
		return ErrNotFound
	case errdefs.IsNotModified(err):
		return &StateError{Reason: alreadyReason}
	case errdefs.IsConflict(err):
		return ErrResourceInUse
	default:
		return err
	}
}
