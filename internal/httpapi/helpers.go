package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeValid decodes the JSON body into dst and runs its validate tags.
// A false return means the response has already been written.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Message: "Invalid JSON body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Message: "Invalid request", Error: err.Error()})
		return false
	}
	return true
}

func writeStorageError(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusInternalServerError, apiError{Message: message, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
