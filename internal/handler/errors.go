package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
)

// writeJSONError emits { "error": "<message>" } with the message JSON-escaped.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	quoted, err := json.Marshal(message)
	if err != nil {
		quoted = []byte(`"internal error"`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{ "error": ` + string(quoted) + ` }`))
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// WriteError reports a failure on an HTML route.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}

func serverError(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func jsonServerError(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	writeJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// CSRFFailure answers requests rejected by the CSRF check.
func CSRFFailure(w http.ResponseWriter, r *http.Request) {
	log.Printf("CSRF check failed for %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
	if strings.HasPrefix(r.URL.Path, "/socialnetwork/") {
		writeJSONError(w, "CSRF verification failed", http.StatusForbidden)
		return
	}
	WriteError(w, "CSRF verification failed", http.StatusForbidden)
}
