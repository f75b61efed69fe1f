package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the uniform error envelope with the correct Content-Type.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"type": "error", "message": msg, "error": msg})
}
