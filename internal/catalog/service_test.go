package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// fakeStore is an in-memory MovieStore. It hands out deep copies so a
// caller's in-flight mutations never leak into the "persisted" state,
// and it enforces the same conditional-save rule as the real repo.
// saveFailures makes the next n saves fail with ErrVersionConflict to
// exercise the retry loop.
type fakeStore struct {
	movies       map[int64]*model.Movie
	saveFailures int
	saveCalls    int
}

func newFakeStore(movies ...*model.Movie) *fakeStore {
	s := &fakeStore{movies: map[int64]*model.Movie{}}
	for _, m := range movies {
		if m.Version == 0 {
			m.Version = 1
		}
		s.movies[m.MovieID] = cloneMovie(m)
	}
	return s
}

func cloneMovie(m *model.Movie) *model.Movie {
	raw, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	out := new(model.Movie)
	if err := json.Unmarshal(raw, out); err != nil {
		panic(err)
	}
	out.Version = m.Version
	return out
}

func (s *fakeStore) FindAll(ctx context.Context) ([]*model.Movie, error) {
	out := make([]*model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, cloneMovie(m))
	}
	return out, nil
}

func (s *fakeStore) FindByMovieID(ctx context.Context, movieID int64) (*model.Movie, error) {
	m, ok := s.movies[movieID]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

func (s *fakeStore) Insert(ctx context.Context, m *model.Movie) error {
	if _, ok := s.movies[m.MovieID]; ok {
		return repository.ErrDuplicateMovie
	}
	m.Version = 1
	s.movies[m.MovieID] = cloneMovie(m)
	return nil
}

func (s *fakeStore) DeleteByMovieID(ctx context.Context, movieID int64) error {
	if _, ok := s.movies[movieID]; !ok {
		return repository.ErrMovieNotFound
	}
	delete(s.movies, movieID)
	return nil
}

func (s *fakeStore) Save(ctx context.Context, m *model.Movie, expectedVersion int64) error {
	s.saveCalls++
	if s.saveFailures > 0 {
		s.saveFailures--
		return repository.ErrVersionConflict
	}
	stored, ok := s.movies[m.MovieID]
	if !ok {
		return repository.ErrMovieNotFound
	}
	if stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	m.Version = expectedVersion + 1
	s.movies[m.MovieID] = cloneMovie(m)
	return nil
}

var _ repository.MovieStore = (*fakeStore)(nil)

func seedMovie() *model.Movie {
	return &model.Movie{
		MovieID: 1,
		Title:   "X",
		Theaters: []model.Theater{
			{Name: "T1", Showtimes: []model.Showtime{}},
		},
	}
}

func TestServiceAddScreenPersistsAggregate(t *testing.T) {
	store := newFakeStore(seedMovie())
	svc := NewService(store)

	added, err := svc.AddScreen(context.Background(), 1, "T1", "S1", []ShowtimeRequest{{Time: "18:00", SeatCount: 2}})
	if err != nil {
		t.Fatalf("AddScreen: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("added %d showtimes, want 1", len(added))
	}

	persisted, err := store.FindByMovieID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByMovieID: %v", err)
	}
	if len(persisted.Theaters[0].Showtimes) != 1 {
		t.Fatalf("persisted %d showtimes, want 1", len(persisted.Theaters[0].Showtimes))
	}
	if persisted.Version != 2 {
		t.Errorf("persisted version = %d, want 2 after one save", persisted.Version)
	}
}

func TestServiceAddScreenRetriesOnVersionConflict(t *testing.T) {
	store := newFakeStore(seedMovie())
	store.saveFailures = 2 // two stale saves before one succeeds
	svc := NewService(store)

	if _, err := svc.AddScreen(context.Background(), 1, "T1", "S1", []ShowtimeRequest{{Time: "18:00", SeatCount: 1}}); err != nil {
		t.Fatalf("AddScreen after retries: %v", err)
	}
	if store.saveCalls != 3 {
		t.Errorf("save called %d times, want 3", store.saveCalls)
	}
}

func TestServiceAddScreenGivesUpAfterRetries(t *testing.T) {
	store := newFakeStore(seedMovie())
	store.saveFailures = saveAttempts // every attempt loses the race
	svc := NewService(store)

	_, err := svc.AddScreen(context.Background(), 1, "T1", "S1", []ShowtimeRequest{{Time: "18:00", SeatCount: 1}})
	if !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
	persisted, _ := store.FindByMovieID(context.Background(), 1)
	if len(persisted.Theaters[0].Showtimes) != 0 {
		t.Errorf("aggregate mutated despite failed saves")
	}
}

func TestServiceAddScreenUnknownMovie(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.AddScreen(context.Background(), 99, "T1", "S1", nil)
	if !errors.Is(err, repository.ErrMovieNotFound) {
		t.Fatalf("err = %v, want ErrMovieNotFound", err)
	}
}

func TestServiceRemoveScreenPersistsAggregate(t *testing.T) {
	m := seedMovie()
	m.Theaters[0].Showtimes = []model.Showtime{
		{Time: "18:00", Screen: "S1", Seats: model.NewSeats(2)},
		{Time: "21:00", Screen: "S2", Seats: model.NewSeats(2)},
	}
	store := newFakeStore(m)
	svc := NewService(store)

	if err := svc.RemoveScreen(context.Background(), 1, "T1", "S1"); err != nil {
		t.Fatalf("RemoveScreen: %v", err)
	}
	persisted, _ := store.FindByMovieID(context.Background(), 1)
	got := persisted.Theaters[0].Showtimes
	if len(got) != 1 || got[0].Screen != "S2" {
		t.Fatalf("persisted showtimes wrong: %+v", got)
	}
}

func TestServiceRemoveScreenSentinels(t *testing.T) {
	store := newFakeStore(seedMovie())
	svc := NewService(store)

	if err := svc.RemoveScreen(context.Background(), 1, "nope", "S1"); !errors.Is(err, repository.ErrTheaterNotFound) {
		t.Errorf("unknown theater err = %v, want ErrTheaterNotFound", err)
	}
	if err := svc.RemoveScreen(context.Background(), 1, "T1", "S1"); !errors.Is(err, repository.ErrScreenNotFound) {
		t.Errorf("unknown screen err = %v, want ErrScreenNotFound", err)
	}
}
