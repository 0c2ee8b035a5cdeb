package web

import (
	"encoding/json"
	"net/http"

	"github.com/ka2n/ecdemo/log"
	"github.com/ka2n/ecdemo/store"
	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for the HTTP surface
type ErrorCode string

const (
	BodyTooLarge ErrorCode = "BodyTooLarge"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON writes v with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("write response", "error", err)
	}
}

// writeError maps err to a status code and writes {success:false, error}
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case failure.Is(err, store.InvalidInput):
		status = http.StatusBadRequest
	case failure.Is(err, BodyTooLarge):
		status = http.StatusRequestEntityTooLarge
	}

	msg := err.Error()
	if fmsg := failure.MessageOf(err); fmsg != "" {
		msg = fmsg.String()
	}
	log.Debug("request failed",
		"path", r.URL.Path,
		"status", status,
		"error", err,
		"request_id", RequestIDFromContext(r.Context()),
	)
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
