// Sentinel errors shared across repositories. Handlers use these
// to distinguish failure scenarios: ErrForbidden means the current
// user does not own the resource, ErrConflict means the operation
// cannot proceed (for example favoriting a hotel twice).

package repository

import (
	"errors"
	"strings"
)

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update collides with
// existing state, such as adding a duplicate favorite. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Sentinel not-found errors per aggregate.  Handlers translate these
// into HTTP 404 responses.
var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
