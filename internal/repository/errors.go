// Package repository defines error types that are reused across the
// data access layer and the catalog engine. These sentinel values let
// higher layers such as handlers distinguish between failure
// scenarios without string matching. For example, ErrMovieNotFound
// maps to an HTTP 404 while ErrDuplicateMovie maps to 409.
package repository

import "errors"

// ErrMovieNotFound is returned when no movie exists for a business id.
// Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")

// ErrTheaterNotFound is returned when a movie holds no theater with
// the requested name. Handlers should translate this into 404.
var ErrTheaterNotFound = errors.New("theater not found for this movie")

// ErrScreenNotFound is returned when a theater holds no showtime with
// the requested screen label. Handlers should translate this into 404.
var ErrScreenNotFound = errors.New("screen not found in this theater")

// ErrScreenExists is returned when a screen-add targets a label that
// already appears in the theater. The add is rejected whole; there is
// no partial add and no merge.
var ErrScreenExists = errors.New("screen already exists in this theater")

// ErrDuplicateMovie is returned when an insert collides with an
// existing business id. Handlers should translate this into 409.
var ErrDuplicateMovie = errors.New("movie id already exists")

// ErrVersionConflict is returned by conditional saves when the stored
// aggregate version no longer matches the one that was loaded. The
// caller is expected to re-read and retry the whole cycle.
var ErrVersionConflict = errors.New("aggregate version conflict")
