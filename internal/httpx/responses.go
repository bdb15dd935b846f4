package httpx

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape of every client-facing error.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} response.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"message": message})
}

// Error writes a {"error": ...} response.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, errorBody{Error: message})
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
