package handler // handler defines http handlers

import (
	"context" // context carries request deadlines into the publish hook
	"log"     // log reports publish failures without failing the request
	"reflect" // reflect is needed to map struct fields to their json names
	"strings" // strings provides tag splitting helpers

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/movie-catalog/internal/catalog"    // catalog holds the screen mutation engine
	"github.com/iliyamo/movie-catalog/internal/queue"      // queue defines catalog event payloads
	"github.com/iliyamo/movie-catalog/internal/repository" // repository holds the aggregate store
)

// CatalogHandler bundles the aggregate store, the screen mutation
// service and the request validator behind the five catalog routes.
// Publish is invoked after every successful mutation; it may be nil
// (events disabled) and its errors are logged, never surfaced.
type CatalogHandler struct {
	Store    repository.MovieStore                           // Store loads and saves movie aggregates
	Catalog  *catalog.Service                                // Catalog runs the screen mutations
	Validate *validator.Validate                             // Validate checks request bodies field by field
	Publish  func(ctx context.Context, ev queue.CatalogEvent) error // Publish emits catalog.updated events
}

// NewCatalogHandler constructs a CatalogHandler and panics if a required
// dependency is nil. The publish hook may be nil.
func NewCatalogHandler(store repository.MovieStore, svc *catalog.Service, v *validator.Validate, publish func(context.Context, queue.CatalogEvent) error) *CatalogHandler {
	if store == nil || svc == nil || v == nil { // check for nil dependencies
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{
		Store:    store,
		Catalog:  svc,
		Validate: v,
		Publish:  publish,
	}
}

// NewValidator builds the request validator. Field names in error
// reports come from the json tags so clients see the names they sent.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldError is one entry of the per-field error list returned on
// validation failures.
type fieldError struct {
	Field   string `json:"field"`   // json name of the offending field
	Message string `json:"message"` // human-readable reason
}

// fieldErrors flattens a validator error into the per-field list. Any
// non-validator error collapses into a single generic entry.
func fieldErrors(err error) []fieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fieldError{{Field: "", Message: "invalid request"}}
	}
	out := make([]fieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, fieldError{Field: e.Field(), Message: messageForTag(e)})
	}
	return out
}

// messageForTag translates a failed validation rule into a message.
func messageForTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

// emit sends a catalog event through the publish hook when one is
// configured. Publishing is best effort: failures are logged and the
// request outcome is unaffected.
func (h *CatalogHandler) emit(ctx context.Context, ev queue.CatalogEvent) {
	if h.Publish == nil {
		return
	}
	if err := h.Publish(ctx, ev); err != nil {
		log.Printf("catalog: publish %s event failed: %v", ev.Action, err)
	}
}
