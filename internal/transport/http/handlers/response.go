package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/service"
	"github.com/vedran77/circle/internal/transport/http/middleware"
	"github.com/vedran77/circle/pkg/validator"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Reason string            `json:"reason"`
	Fields map[string]string `json:"fields,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

var statusOK = statusResponse{Status: "ok"}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, errorResponse{Reason: reason})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Reason: "Request validation failed",
		Fields: errs,
	})
}

// writeServiceError renders a service outcome. Anything that is not a typed
// outcome is logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		middleware.LoggerFrom(r.Context()).ErrorContext(r.Context(), op, "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindUnauthenticated:
		status = http.StatusUnauthorized
	case domain.KindNotFoundOrForbidden:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindForbidden:
		status = http.StatusForbidden
	}
	writeJSON(w, status, errorResponse{Reason: de.Reason, Fields: de.Fields})
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if errs := validator.Struct(dst); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return false
	}
	return true
}

// pageFromQuery reads offset and limit. Values that are not integers are
// rejected; range clamping is left to the service.
func pageFromQuery(w http.ResponseWriter, r *http.Request) (service.Page, bool) {
	var page service.Page
	q := r.URL.Query()
	for name, dst := range map[string]*int{"offset": &page.Offset, "limit": &page.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeValidationErrors(w, validator.ValidationErrors{name: "Must be an integer"})
			return service.Page{}, false
		}
		*dst = n
	}
	return page, true
}
