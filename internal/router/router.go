package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/movie-catalog/internal/handler" // import the handlers that implement catalog logic
)

// RegisterRoutes registers the catalog routes on the provided Echo
// instance. The route shapes mirror the public API: the movie list,
// the movie lifecycle operations and the two theater/screen
// mutations, plus a health check for load balancers.
func RegisterRoutes(e *echo.Echo, h *handler.CatalogHandler) {
	// Health check used by load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)

	// Movie lifecycle: list all movies newest first, create a full
	// aggregate, delete one by its business id.
	e.GET("/allMovies", h.ListMovies)
	e.POST("/addMovie", h.AddMovie)
	e.DELETE("/removeMovie", h.RemoveMovie)

	// Theater/screen mutations. Both load the movie aggregate, edit it
	// in memory and persist it back with a single conditional save.
	e.PUT("/addScreenToTheater", h.AddScreenToTheater)
	e.PUT("/removeScreenFromTheater", h.RemoveScreenFromTheater)
}
