package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kvgate/kvgate"
)

// ErrorResponse represents a JSON error response from the gate itself
// (authentication rejections), as opposed to the structured failed results
// the routes return.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteResponse encodes a store read result in the negotiated format and
// writes it with the matching Content-Type. Failed results still get a 200
// status; the success flag in the body carries the outcome.
func WriteResponse(w http.ResponseWriter, resp kvgate.Response, format kvgate.Format) {
	body, err := kvgate.Encode(resp, format)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		WriteError(w, http.StatusInternalServerError, "encode_error", "Failed to encode response")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
