package api

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// writeError sends a client-facing error body. Storage failures should pass a
// generic message here; the details belong in the log only.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, messageResponse{Message: message}, status)
}
