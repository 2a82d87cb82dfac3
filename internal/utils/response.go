package utils

import (
	"encoding/json"
	"net/http"

	"interviewprep/api/internal/models"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Success wraps data in the {success, data} envelope.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	JSON(w, statusCode, models.Envelope{Success: true, Data: data})
}

// Failure writes the uniform error body.
func Failure(w http.ResponseWriter, statusCode int, errResp models.ErrorResponse) {
	errResp.Success = false
	JSON(w, statusCode, errResp)
}
