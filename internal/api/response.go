package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"hamming-numbers/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an Error body. Structured errors contribute their code.
func writeError(w http.ResponseWriter, status int, err error) {
	message := err.Error()
	var se *errors.StructuredError
	if errors.As(err, &se) {
		message = se.Message
	}

	writeJSON(w, status, Error{
		Code:  string(errors.CodeOf(err)),
		Error: message,
	})
}

// paramErrorHandler reports parameter binding failures from the generated
// wrapper as INVALID_PARAMETER errors.
func paramErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, Error{
		Code:  string(errors.ErrCodeInvalidParameter),
		Error: err.Error(),
	})
}

func parseUUID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
