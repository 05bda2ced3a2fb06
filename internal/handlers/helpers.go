package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/spendwise/backend/internal/services"
)

const maxBodyBytes = 1_048_576 // 1 MB

var errMultipleObjects = services.NewValidationError("Request body must only contain a single JSON object", nil)

// decodeJSON reads exactly one JSON object with no unknown fields into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return services.NewValidationError("Invalid request body", map[string]string{"body": err.Error()})
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errMultipleObjects
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Failed to encode response: %v", err)
	}
}

// identity returns the caller resolved by the Authorize middleware
func identity(r *http.Request) (services.Identity, error) {
	id, ok := services.IdentityFromContext(r.Context())
	if !ok {
		return services.Identity{}, services.ErrInvalidToken
	}
	return id, nil
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, services.NewValidationError("Validation failed", map[string]string{name: "must be an integer"})
	}
	return &v, nil
}

// expenseQuery collects the year/month/day/createdById filters
func expenseQuery(r *http.Request) (services.ExpenseQuery, error) {
	var q services.ExpenseQuery
	var errs []error

	var err error
	if q.Year, err = queryInt(r, "year"); err != nil {
		errs = append(errs, err)
	}
	if q.Month, err = queryInt(r, "month"); err != nil {
		errs = append(errs, err)
	}
	if q.Day, err = queryInt(r, "day"); err != nil {
		errs = append(errs, err)
	}
	q.CreatedByID = r.URL.Query().Get("createdById")

	if len(errs) > 0 {
		fields := map[string]string{}
		for _, e := range errs {
			var domainErr *services.Error
			if errors.As(e, &domainErr) {
				for k, v := range domainErr.Fields {
					fields[k] = v
				}
			}
		}
		return q, services.NewValidationError("Validation failed", fields)
	}
	return q, nil
}
