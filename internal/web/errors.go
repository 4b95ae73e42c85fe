package web

// errors.go turns handler errors into JSON responses. The technical error
// is logged with the request id; the client gets the mapped user message,
// its action hint and its code, plus the failing fields for validation
// errors.

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/auth"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/core"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/logging"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/validation"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Action  string                       `json:"action,omitempty"`
	Code    string                       `json:"code"`
	Fields  []validation.ValidationError `json:"fields,omitempty"`
	Missing []string                     `json:"missing,omitempty"`
}

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// errBadRequest marks client mistakes that MapError has no better code for.
var errBadRequest = errors.New("bad request")

// badRequest wraps err so statusFor maps it to 400.
func badRequest(err error) error {
	return errors.Join(errBadRequest, err)
}

// statusFor picks the HTTP status of an error.
func statusFor(err error) int {
	var (
		inputErr  *core.InputError
		importErr *tabular.ImportError
		permErr   *auth.PermissionError
		sizeErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &inputErr), errors.As(err, &importErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrAssetNotFound), errors.Is(err, tabular.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, core.ErrNoIDs), errors.Is(err, core.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.As(err, &permErr):
		return http.StatusForbidden
	case errors.As(err, &sizeErr), errors.Is(err, tabular.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped response. A zero statusCode
// is derived from the error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	if statusCode == 0 {
		statusCode = statusFor(err)
	}
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", msg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", args...)
	} else {
		logger.Warn("request error", args...)
	}

	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	var (
		inputErr  *core.InputError
		importErr *tabular.ImportError
	)
	if errors.As(err, &inputErr) {
		resp.Fields = inputErr.Errors
	}
	if errors.As(err, &importErr) {
		resp.Error = importErr.Message
		resp.Missing = importErr.Missing
	}

	if errors.Is(err, core.ErrTooManyImports) {
		w.Header().Set("Retry-After", "30")
	}
	writeJSON(w, statusCode, resp)
}

// decodeJSON reads a JSON request body into v. Numbers are kept as
// json.Number so money values keep their precision.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return badRequest(err)
	}
	return nil
}
