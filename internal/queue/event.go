// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by CatalogEvent. One event is published per
// successful mutation of the catalog.
const (
	ActionMovieCreated  = "movie.created"
	ActionMovieRemoved  = "movie.removed"
	ActionScreenAdded   = "screen.added"
	ActionScreenRemoved = "screen.removed"
)

// CatalogEvent is published to the catalog.updated queue whenever a
// movie or one of its screens changes. It carries enough information
// for downstream consumers to log, notify, or trigger analytics
// without querying the primary database.
type CatalogEvent struct {
	Action     string `json:"action"`              // one of the Action* constants
	MovieID    int64  `json:"movie_id"`            // business key of the affected movie
	Title      string `json:"title,omitempty"`     // movie title, set on movie-level actions
	Theater    string `json:"theater,omitempty"`   // theater name, set on screen actions
	Screen     string `json:"screen,omitempty"`    // screen label, set on screen actions
	Showtimes  int    `json:"showtimes,omitempty"` // showtimes added by a screen.added action
	OccurredAt string `json:"occurred_at"`         // RFC3339 timestamp of the mutation
}
