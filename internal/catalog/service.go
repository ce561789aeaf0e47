package catalog

import (
	"context"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// saveAttempts bounds the read-modify-write retry loop. Each attempt
// re-reads the aggregate, so a retry always validates against the
// state that beat it to the save.
const saveAttempts = 3

// Service runs the screen mutations as full read-modify-write cycles
// against the aggregate store. Saves are conditional on the version
// that was loaded; a concurrent writer makes the save fail with
// ErrVersionConflict and the whole cycle is retried.
type Service struct {
	store repository.MovieStore // store loads and saves whole aggregates
}

// NewService constructs a Service and panics if the store is nil.
func NewService(store repository.MovieStore) *Service {
	if store == nil {
		panic("nil store passed to catalog.NewService")
	}
	return &Service{store: store}
}

// AddScreen loads the movie by business id, applies the screen add and
// persists the whole aggregate atomically. Returned errors are the
// repository sentinels: ErrMovieNotFound, ErrTheaterNotFound,
// ErrScreenExists, or ErrVersionConflict once retries are exhausted.
func (s *Service) AddScreen(ctx context.Context, movieID int64, theaterName, screenName string, reqs []ShowtimeRequest) ([]model.Showtime, error) {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		movie, err := s.store.FindByMovieID(ctx, movieID)
		if err != nil {
			return nil, err
		}
		added, err := AddScreen(movie, theaterName, screenName, reqs)
		if err != nil {
			return nil, err
		}
		if err := s.store.Save(ctx, movie, movie.Version); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return added, nil
	}
	return nil, lastErr
}

// RemoveScreen loads the movie, removes the first showtime matching
// the screen label in the named theater and persists the aggregate.
// Sentinel errors mirror AddScreen, with ErrScreenNotFound when no
// showtime carries the label.
func (s *Service) RemoveScreen(ctx context.Context, movieID int64, theaterName, screenName string) error {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		movie, err := s.store.FindByMovieID(ctx, movieID)
		if err != nil {
			return err
		}
		if err := RemoveScreen(movie, theaterName, screenName); err != nil {
			return err
		}
		if err := s.store.Save(ctx, movie, movie.Version); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}
