package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/identity"
)

// decodeBody decodes a required JSON body into dst. Failures wrap
// domain.ErrValidation so they map to 422, except an oversized body which
// keeps its *http.MaxBytesError for the 413 path.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: malformed request body: %v", domain.ErrValidation, err)
}

// bindBody decodes the body and writes the error response itself. It returns
// false when the handler should stop.
func bindBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := decodeBody(r, dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{Code: "body_too_large", Message: err.Error()}})
		return false
	}
	writeError(w, r, err)
	return false
}

// pathIndex binds an integer path parameter the way generated servers do.
func pathIndex(r *http.Request, name string) (int, error) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", domain.ErrValidation, name, err)
	}
	return v, nil
}

// queryInt binds an optional integer query parameter, returning 0 when absent.
func queryInt(r *http.Request, name string) (int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", domain.ErrValidation, name, err)
	}
	if v == nil {
		return 0, nil
	}
	return *v, nil
}

// actingUser returns the user set by the identity middleware.
func actingUser(r *http.Request) domain.ActingUser {
	return identity.FromContext(r.Context())
}

func tripID(r *http.Request) string { return chi.URLParam(r, "tripID") }
func sectionKey(r *http.Request) string { return chi.URLParam(r, "key") }
func entryID(r *http.Request) string { return chi.URLParam(r, "entryID") }
