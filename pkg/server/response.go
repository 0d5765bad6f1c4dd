package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"srs-hq/rulediff/pkg/telemetry/logging"
)

// Status bodies of the API.
const (
	StatusMissingParameters = "Invalid request: missing parameters"
	StatusDBError           = "DB error"
	StatusComparisonError   = "Comparison error"
	StatusBodyTooLarge      = "Request body too large"
	StatusMethodNotAllowed  = "Method not allowed"
)

// statusBody is the error body shape shared by all endpoints.
type statusBody struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

var redactor = logging.NewRedactor(nil)

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// writeStatus writes a status body. Error text is scrubbed of secrets.
func writeStatus(w http.ResponseWriter, code int, status string, err error) {
	body := statusBody{Status: status}
	if err != nil {
		body.Error = redactor.RedactString(err.Error())
	}
	writeJSON(w, code, body)
}

// tooLarge reports whether err came from an exceeded body limit.
func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func allowPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeStatus(w, http.StatusMethodNotAllowed, StatusMethodNotAllowed, nil)
		return false
	}
	return true
}
