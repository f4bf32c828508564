// Package screens exposes the six admin console screens as HTTP handler
// groups. Every screen is a pure consumer of the gateway: it triggers a
// fetch, reads the resulting snapshot, applies local filtering, and calls
// straight through for mutations. No screen holds authoritative state.
package screens

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bunaifromhills/admin-console/internal/gateway"
)

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// httpStatus maps a gateway failure onto a response code. Upstream 4xx codes
// pass through; everything else the console could not control is a bad
// gateway.
func httpStatus(err error) int {
	var transErr *gateway.TransitionError
	if errors.As(err, &transErr) {
		return http.StatusUnprocessableEntity
	}
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	}
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// matchesSearch is a case-insensitive substring match over any of the fields.
// An empty term matches everything.
func matchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// matchesFilter is an exact, case-insensitive category/status filter. Empty
// and "all" match everything.
func matchesFilter(filter, value string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" || filter == "all" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), filter)
}
