// Package catalog implements the theater/screen mutation engine. The
// functions in this file edit a loaded movie aggregate in memory and
// enforce the existence and uniqueness invariants before touching
// anything; persistence of the mutated aggregate is the service's job
// (see service.go).
package catalog

import (
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ShowtimeRequest describes one showtime to schedule under a screen.
// Only the seat count is taken from the caller's seat list; seat
// contents are discarded so new seats always start pristine.
type ShowtimeRequest struct {
	Time      string // scheduled time, copied verbatim onto the new showtime
	SeatCount int    // number of seats to generate
}

// AddScreen appends one showtime per request to the named theater,
// all labeled with screenName. It fails with ErrTheaterNotFound when
// the movie has no such theater and with ErrScreenExists when any
// existing showtime already carries the label; in both cases the
// aggregate is left untouched. On success it returns the newly
// created showtimes in request order.
func AddScreen(m *model.Movie, theaterName, screenName string, reqs []ShowtimeRequest) ([]model.Showtime, error) {
	theater := m.FindTheater(theaterName)
	if theater == nil {
		return nil, repository.ErrTheaterNotFound
	}
	if theater.HasScreen(screenName) {
		// no partial add, no merge
		return nil, repository.ErrScreenExists
	}
	added := make([]model.Showtime, 0, len(reqs))
	for _, req := range reqs {
		added = append(added, model.Showtime{
			Time:   req.Time,
			Screen: screenName,
			Seats:  model.NewSeats(req.SeatCount),
		})
	}
	theater.Showtimes = append(theater.Showtimes, added...)
	return added, nil
}

// RemoveScreen deletes the first showtime in the named theater whose
// screen label matches, preserving the relative order of the rest.
// Only one entry is removed per call, even when several showtimes
// share the label; callers who added a multi-showtime screen must
// call repeatedly. Fails with ErrTheaterNotFound or ErrScreenNotFound
// without touching the aggregate.
func RemoveScreen(m *model.Movie, theaterName, screenName string) error {
	theater := m.FindTheater(theaterName)
	if theater == nil {
		return repository.ErrTheaterNotFound
	}
	for i := range theater.Showtimes {
		if theater.Showtimes[i].Screen == screenName {
			theater.Showtimes = append(theater.Showtimes[:i], theater.Showtimes[i+1:]...)
			return nil
		}
	}
	return repository.ErrScreenNotFound
}
