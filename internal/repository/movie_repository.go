// Package repository contains data access logic separated from HTTP
// handlers. This file defines the movie store. A movie is persisted
// as a single document: one row per movie with the whole
// theater/showtime/seat tree marshalled into a JSON column, so loads
// and saves always move the complete aggregate and no sub-document is
// ever written on its own.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieStore is the aggregate store contract consumed by handlers and
// the catalog engine. MovieRepo implements it against MySQL; tests
// substitute in-memory fakes.
type MovieStore interface {
	// FindAll returns every movie ordered by creation time, newest first.
	FindAll(ctx context.Context) ([]*model.Movie, error)
	// FindByMovieID returns the movie with the given business id or
	// ErrMovieNotFound.
	FindByMovieID(ctx context.Context, movieID int64) (*model.Movie, error)
	// Insert persists a brand new aggregate at version 1. It returns
	// ErrDuplicateMovie when the business id is already taken.
	Insert(ctx context.Context, m *model.Movie) error
	// DeleteByMovieID removes the movie and its whole owned tree. It
	// returns ErrMovieNotFound when no row matches.
	DeleteByMovieID(ctx context.Context, movieID int64) error
	// Save replaces the entire aggregate, conditional on the version
	// the caller loaded. On mismatch it returns ErrVersionConflict and
	// writes nothing; on success the movie's Version is bumped.
	Save(ctx context.Context, m *model.Movie, expectedVersion int64) error
}

// MovieRepo encapsulates all database queries related to movies. It
// depends on a sql.DB connection which should be configured elsewhere.
type MovieRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
// This function allows dependency injection of the database in tests
// and at startup.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// compile-time check that MovieRepo satisfies the store contract
var _ MovieStore = (*MovieRepo)(nil)

// FindAll returns all movies ordered by creation time, newest first.
// Rows created in the same instant fall back to descending row id so
// the order stays stable.
func (r *MovieRepo) FindAll(ctx context.Context) ([]*model.Movie, error) {
	const q = `SELECT doc, version FROM movies ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		var (
			doc     []byte
			version int64
		)
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, err
		}
		m := new(model.Movie)
		if err := json.Unmarshal(doc, m); err != nil {
			return nil, fmt.Errorf("decode movie document: %w", err)
		}
		m.Version = version
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByMovieID fetches one movie by its business id. It returns
// ErrMovieNotFound if no row is found.
func (r *MovieRepo) FindByMovieID(ctx context.Context, movieID int64) (*model.Movie, error) {
	const q = `SELECT doc, version FROM movies WHERE movie_id = ?`
	var (
		doc     []byte
		version int64
	)
	if err := r.db.QueryRowContext(ctx, q, movieID).Scan(&doc, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	m := new(model.Movie)
	if err := json.Unmarshal(doc, m); err != nil {
		return nil, fmt.Errorf("decode movie document: %w", err)
	}
	m.Version = version
	return m, nil
}

// Insert stores a brand new aggregate. The document starts at version 1
// regardless of what the caller set. Duplicate business ids surface as
// ErrDuplicateMovie (MySQL duplicate key, error code 1062).
func (r *MovieRepo) Insert(ctx context.Context, m *model.Movie) error {
	m.Version = 1
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode movie document: %w", err)
	}
	const q = `INSERT INTO movies (movie_id, doc, version) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, m.MovieID, doc, m.Version); err != nil {
		if strings.Contains(err.Error(), "1062") { // duplicate key on movie_id
			return ErrDuplicateMovie
		}
		return err
	}
	return nil
}

// DeleteByMovieID removes a movie row, and with it the whole embedded
// theater/showtime/seat tree. ErrMovieNotFound is returned when
// nothing was deleted.
func (r *MovieRepo) DeleteByMovieID(ctx context.Context, movieID int64) error {
	const q = `DELETE FROM movies WHERE movie_id = ?`
	res, err := r.db.ExecContext(ctx, q, movieID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Save replaces the stored document with the in-memory aggregate,
// conditional on expectedVersion. The WHERE clause carries the version
// check so two racing read-modify-write cycles cannot both win: the
// loser sees zero affected rows and gets ErrVersionConflict (or
// ErrMovieNotFound when the row vanished entirely).
func (r *MovieRepo) Save(ctx context.Context, m *model.Movie, expectedVersion int64) error {
	m.Version = expectedVersion + 1
	doc, err := json.Marshal(m)
	if err != nil {
		m.Version = expectedVersion
		return fmt.Errorf("encode movie document: %w", err)
	}
	const q = `UPDATE movies
	           SET doc = ?, version = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE movie_id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q, doc, m.Version, m.MovieID, expectedVersion)
	if err != nil {
		m.Version = expectedVersion
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		m.Version = expectedVersion
		var exists int
		probe := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE movie_id = ?`, m.MovieID)
		if scanErr := probe.Scan(&exists); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return ErrMovieNotFound
			}
			return scanErr
		}
		return ErrVersionConflict
	}
	return nil
}
