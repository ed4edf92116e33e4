package errors

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrorResponse standardized error response formatı.
// Caller'a asla raw stack trace dönülmez.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      int    `json:"code"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteAPIError typed error'ı kendi status'uyla yazar
func WriteAPIError(w http.ResponseWriter, err APIError) {
	WriteError(w, err.Status(), err.Error())
}

// WriteError structured JSON error body yazar
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      statusCode,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Int("status_code", statusCode).Msg("Error response yazılamadı")
	}
}
