package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	resp := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}
	if details != nil {
		resp.Details = details.Error()
	}
	writeHeaders(w, statusCode)
	sonic.ConfigFastest.NewEncoder(w).Encode(resp)
}

// WriteJSONResponse encodes body with sorted keys so responses built from
// maps are stable between calls.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	writeHeaders(w, statusCode)
	if body != nil {
		sonic.ConfigStd.NewEncoder(w).Encode(body)
	}
}

// Responses reflect live tracker state and must not be cached.
func writeHeaders(w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
}
