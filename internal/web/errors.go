package web

// errors.go provides unified error response handling for the web layer.
//
// Every failure is logged with its technical detail and request id, then
// rendered for the client as a user message with an action and a code:
// a templ fragment for HTMX, JSON for API callers, plain text otherwise.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/pharmastock/internal/core"
	"github.com/JonMunkholm/pharmastock/internal/logging"
	"github.com/JonMunkholm/pharmastock/internal/web/templates"
)

// ErrorResponse is the failure half of the import API's two-variant result.
// Error is the text to show; the remaining fields let clients localise or
// look the problem up.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
	Detail  string `json:"detail,omitempty"`
}

// newErrorResponse builds the client body for err. Ingestion errors are
// user-correctable, so their text is shown as is; everything else shows the
// mapped message only.
func newErrorResponse(err error) ErrorResponse {
	msg := core.MapError(err)
	text := msg.Message

	var ie *core.IngestError
	if errors.As(err, &ie) {
		text = ie.Message
	}

	return ErrorResponse{
		Error:   text,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
		Detail:  msg.Detail,
	}
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrParse),
		errors.Is(err, core.ErrNoFile),
		errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, core.ErrInvalidImportID):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrImportNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the client response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	body := newErrorResponse(err)

	logger := logging.FromContext(r.Context())
	logArgs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", body.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", logArgs...)
	} else {
		logger.Warn("request rejected", logArgs...)
	}

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, body, statusCode)
	case wantsJSON(r):
		respondErrorJSON(w, body, statusCode)
	default:
		http.Error(w, core.FormatUserError(err), statusCode)
	}
}

// respondServiceError is respondError with the status derived from err.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, r, err, statusFor(err))
}

func respondErrorJSON(w http.ResponseWriter, body ErrorResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// renderErrorPartial renders an HTMX error fragment.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, body ErrorResponse, statusCode int) {
	msg := body.Error
	if body.Detail != "" && body.Detail != msg {
		msg += ": " + body.Detail
	}
	renderFragment(w, r, statusCode, templates.ErrorAlert(msg, body.Action, body.Code))
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
