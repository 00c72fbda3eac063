package interfaces

import "errors"

// ErrNotFound is wrapped by every repository backend when a record
// does not exist, so callers can branch without knowing the backend.
var ErrNotFound = errors.New("record not found")
