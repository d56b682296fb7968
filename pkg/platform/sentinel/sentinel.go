package sentinel

import "errors"

// Infrastructure facts returned (optionally wrapped) by stores and clients.
// Services translate them into domain outcomes or coded errors; they never
// describe validation failures.
var (
	// ErrNotFound: the requested row or key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable: a backing service could not be reached in time.
	ErrUnavailable = errors.New("unavailable")
	// ErrConflict: a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict")
)
