package handler // handler package contains theater/screen mutation handlers

import (
	"encoding/json" // json.RawMessage carries seat payloads whose contents are discarded
	"errors"        // errors matches repository sentinels
	"net/http"      // http provides status code constants
	"time"          // time stamps emitted events

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/movie-catalog/internal/catalog"    // catalog runs the mutation engine
	"github.com/iliyamo/movie-catalog/internal/queue"      // queue defines catalog events
	"github.com/iliyamo/movie-catalog/internal/repository" // repository defines store sentinels
)

// showtimePayload is one requested showtime on PUT /addScreenToTheater.
// Seats must be an array but only its length is consumed: each element
// is replaced with a pristine seat, whatever the caller sent.
type showtimePayload struct {
	Time  string             `json:"time" validate:"required"`
	Seats *[]json.RawMessage `json:"seats" validate:"required"`
}

// addScreenRequest binds the PUT /addScreenToTheater body.
type addScreenRequest struct {
	MovieID     *int64             `json:"movieId" validate:"required"`
	TheaterName string             `json:"theaterName" validate:"required"`
	ScreenName  string             `json:"screenName" validate:"required"`
	Showtimes   *[]showtimePayload `json:"showtimes" validate:"required,dive"`
}

// removeScreenRequest binds the PUT /removeScreenFromTheater body.
type removeScreenRequest struct {
	MovieID     *int64 `json:"movieId" validate:"required"`
	TheaterName string `json:"theaterName" validate:"required"`
	ScreenName  string `json:"screenName" validate:"required"`
}

// AddScreenToTheater handles PUT /addScreenToTheater. It schedules the
// requested showtimes under the named screen inside the named theater
// and persists the whole aggregate in one save.
func (h *CatalogHandler) AddScreenToTheater(c echo.Context) error { // begin AddScreenToTheater handler
	var body addScreenRequest
	if err := c.Bind(&body); err != nil { // bind incoming JSON
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.Validate.Struct(&body); err != nil { // validate before touching the store
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": fieldErrors(err)})
	}
	reqs := make([]catalog.ShowtimeRequest, 0, len(*body.Showtimes)) // translate payloads for the engine
	for _, st := range *body.Showtimes {
		reqs = append(reqs, catalog.ShowtimeRequest{
			Time:      st.Time,
			SeatCount: len(*st.Seats), // seat contents are intentionally dropped
		})
	}
	added, err := h.Catalog.AddScreen(c.Request().Context(), *body.MovieID, body.TheaterName, body.ScreenName, reqs)
	if err != nil {
		return h.screenError(c, err, *body.MovieID)
	}
	h.emit(c.Request().Context(), queue.CatalogEvent{ // announce the new screen
		Action:     queue.ActionScreenAdded,
		MovieID:    *body.MovieID,
		Theater:    body.TheaterName,
		Screen:     body.ScreenName,
		Showtimes:  len(added),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, map[string]any{ // confirmation plus the created showtimes
		"msg":       "screen added successfully",
		"showtimes": added,
	})
}

// RemoveScreenFromTheater handles PUT /removeScreenFromTheater. It
// removes the first showtime carrying the screen label and persists
// the aggregate. One showtime per call: a screen added with several
// showtimes takes several calls to disappear.
func (h *CatalogHandler) RemoveScreenFromTheater(c echo.Context) error { // begin RemoveScreenFromTheater handler
	var body removeScreenRequest
	if err := c.Bind(&body); err != nil { // bind incoming JSON
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.Validate.Struct(&body); err != nil { // validate before touching the store
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": fieldErrors(err)})
	}
	if err := h.Catalog.RemoveScreen(c.Request().Context(), *body.MovieID, body.TheaterName, body.ScreenName); err != nil {
		return h.screenError(c, err, *body.MovieID)
	}
	h.emit(c.Request().Context(), queue.CatalogEvent{ // announce the removal
		Action:     queue.ActionScreenRemoved,
		MovieID:    *body.MovieID,
		Theater:    body.TheaterName,
		Screen:     body.ScreenName,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, map[string]string{"msg": "screen removed successfully"}) // confirmation only
}

// screenError maps engine and store sentinels onto HTTP responses
// shared by both screen mutations.
func (h *CatalogHandler) screenError(c echo.Context, err error, movieID int64) error {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrTheaterNotFound),
		errors.Is(err, repository.ErrScreenNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrScreenExists):
		// a duplicate screen is reported as a client error on this route
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrVersionConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": "concurrent update, please retry"})
	default:
		c.Logger().Errorf("screen mutation on movie %d: %v", movieID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not update theater"})
	}
}
