package handler // handler package contains movie lifecycle handlers

import (
	"errors"   // errors matches repository sentinels
	"net/http" // http provides status code constants
	"strconv"  // strconv parses the id query parameter
	"time"     // time parses the release date and stamps events

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/movie-catalog/internal/model"      // model defines the movie aggregate
	"github.com/iliyamo/movie-catalog/internal/queue"      // queue defines catalog events
	"github.com/iliyamo/movie-catalog/internal/repository" // repository defines store sentinels
)

// addMovieRequest binds the POST /addMovie body. Pointer fields mark
// values that must be present in the JSON even when their zero value
// is legal (a 0 rating, an empty theaters array). Theaters, showtimes
// and seats are accepted verbatim: creation is the one path where
// seat data is not re-derived.
type addMovieRequest struct {
	MovieID            *int64           `json:"id" validate:"required"`
	Title              string           `json:"title" validate:"required"`
	Genre              *[]string        `json:"genre" validate:"required"`
	Language           string           `json:"language" validate:"required"`
	Duration           string           `json:"duration" validate:"required"`
	ReleaseDate        string           `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	Synopsis           string           `json:"synopsis" validate:"required"`
	Cast               *[]string        `json:"cast" validate:"required"`
	Director           string           `json:"director" validate:"required"`
	Rating             *float64         `json:"rating" validate:"required"`
	PosterURL          string           `json:"posterUrl" validate:"required,url"`
	BackgroundImageURL string           `json:"backgroundImageUrl" validate:"required,url"`
	Theaters           *[]model.Theater `json:"theaters" validate:"required"`
}

// ListMovies handles GET /allMovies and returns every movie ordered
// newest first.
func (h *CatalogHandler) ListMovies(c echo.Context) error { // begin ListMovies handler
	movies, err := h.Store.FindAll(c.Request().Context()) // fetch all aggregates
	if err != nil {                                       // handle store errors
		c.Logger().Errorf("list movies: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load movies"})
	}
	if movies == nil { // always return an array, never null
		movies = []*model.Movie{}
	}
	return c.JSON(http.StatusOK, movies) // return the bare list
}

// AddMovie handles POST /addMovie and inserts a full movie aggregate.
// Every field is validated up front as one all-or-nothing check; the
// store is never touched on validation failure.
func (h *CatalogHandler) AddMovie(c echo.Context) error { // begin AddMovie handler
	var body addMovieRequest
	if err := c.Bind(&body); err != nil { // bind incoming JSON
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.Validate.Struct(&body); err != nil { // run the per-field checks
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": fieldErrors(err)})
	}
	releaseDate, err := time.Parse("2006-01-02", body.ReleaseDate) // already shape-checked by the datetime rule
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": []fieldError{{Field: "releaseDate", Message: "must be a valid date in YYYY-MM-DD format"}}})
	}
	movie := &model.Movie{ // assemble the aggregate as given
		MovieID:            *body.MovieID,
		Title:              body.Title,
		Genre:              *body.Genre,
		Language:           body.Language,
		Duration:           body.Duration,
		ReleaseDate:        releaseDate,
		Synopsis:           body.Synopsis,
		Cast:               *body.Cast,
		Director:           body.Director,
		Rating:             *body.Rating,
		PosterURL:          body.PosterURL,
		BackgroundImageURL: body.BackgroundImageURL,
		Theaters:           *body.Theaters,
	}
	if err := h.Store.Insert(c.Request().Context(), movie); err != nil { // persist the new aggregate
		if errors.Is(err, repository.ErrDuplicateMovie) { // business id already taken
			return c.JSON(http.StatusConflict, map[string]string{"error": repository.ErrDuplicateMovie.Error()})
		}
		c.Logger().Errorf("add movie %d: %v", movie.MovieID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create movie"})
	}
	h.emit(c.Request().Context(), queue.CatalogEvent{ // announce the new movie
		Action:     queue.ActionMovieCreated,
		MovieID:    movie.MovieID,
		Title:      movie.Title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, movie) // echo the created aggregate back
}

// RemoveMovie handles DELETE /removeMovie?id=<businessId> and deletes
// the movie together with its whole owned tree.
func (h *CatalogHandler) RemoveMovie(c echo.Context) error { // begin RemoveMovie handler
	rawID := c.QueryParam("id")                   // read the id query parameter
	movieID, err := strconv.ParseInt(rawID, 10, 64) // the business key must be numeric
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": []fieldError{{Field: "id", Message: "must be numeric"}}})
	}
	if err := h.Store.DeleteByMovieID(c.Request().Context(), movieID); err != nil { // delete by business id
		if errors.Is(err, repository.ErrMovieNotFound) { // nothing to delete
			return c.JSON(http.StatusNotFound, map[string]string{"error": repository.ErrMovieNotFound.Error()})
		}
		c.Logger().Errorf("remove movie %d: %v", movieID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not remove movie"})
	}
	h.emit(c.Request().Context(), queue.CatalogEvent{ // announce the removal
		Action:     queue.ActionMovieRemoved,
		MovieID:    movieID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, map[string]string{"msg": "movie removed successfully"}) // confirmation only
}
