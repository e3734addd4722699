package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/authly/authly-rhythm/internal/domain"
)

// HandlerFunc is an http.HandlerFunc that reports failure instead of
// writing it. No handler formats an error response itself; Wrap is the
// single place errors become responses.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap translates a returned domain.HTTPError into its exact status and
// message. Anything else is logged server-side and surfaced as a
// generic 500; the underlying cause never reaches the client.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var httpErr *domain.HTTPError
		if errors.As(err, &httpErr) {
			RespondJSON(w, httpErr.Status, map[string]string{"message": httpErr.Message})
			return
		}

		log.Printf("ERROR [%s %s] %v", r.Method, r.URL.Path, err)
		RespondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
}

func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
