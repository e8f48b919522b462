package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/view"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Data    interface{}       `json:"data,omitempty"`
	Meta    interface{}       `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func buildMeta(r *http.Request) interface{} {
	requestID := RequestIDFrom(r)
	if requestID == "" {
		return nil
	}
	return map[string]interface{}{"request_id": requestID}
}

// WantsJSON reports whether the client asked for JSON rather than HTML.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeJSON(w, status, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r),
	})
}

func JSONError(w http.ResponseWriter, r *http.Request, status int, code, message string, details []ErrorDetail, data interface{}) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Data: data,
		Meta: buildMeta(r),
	})
}

// Page answers with the rendered page, or with the page as JSON data.
func Page(w http.ResponseWriter, r *http.Request, status int, p templ.Component) {
	if WantsJSON(r) {
		JSONSuccess(w, r, status, p)
		return
	}
	render(w, r, status, p)
}

func render(w http.ResponseWriter, r *http.Request, status int, p templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := p.Render(r.Context(), w); err != nil {
		LoggerFrom(r).Error("render page", slog.String("error", err.Error()))
	}
}

// Rejected re-renders a form page with its field errors.
func Rejected(w http.ResponseWriter, r *http.Request, p templ.Component, errs form.Errors) {
	LoggerFrom(r).Debug("form rejected", slog.String("path", r.URL.Path), slog.String("errors", errs.Error()))
	if WantsJSON(r) {
		details := make([]ErrorDetail, 0, len(errs))
		for _, e := range errs {
			details = append(details, ErrorDetail{Field: e.Field, Kind: e.Kind.String(), Message: e.Message})
		}
		JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Submitted form is invalid", details, p)
		return
	}
	render(w, r, http.StatusOK, p)
}

// Conflict re-renders a delete page that lists the records blocking the delete.
func Conflict(w http.ResponseWriter, r *http.Request, p templ.Component) {
	if WantsJSON(r) {
		JSONError(w, r, http.StatusConflict, "REFERENTIAL_CONFLICT", "Record has dependent records", nil, p)
		return
	}
	render(w, r, http.StatusOK, p)
}

// Redirect sends the client to url after a successful write.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Fail maps err to a not-found page, a client error for a body that could not
// be parsed, or an opaque internal error.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		NotFound(w, r, err.Error())
		return
	}
	if errors.Is(err, form.ErrMalformed) {
		BadRequest(w, r, err)
		return
	}
	LoggerFrom(r).Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	internalError(w, r)
}

func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	if WantsJSON(r) {
		JSONError(w, r, http.StatusNotFound, "NOT_FOUND", message, nil, nil)
		return
	}
	render(w, r, http.StatusNotFound, view.ErrorPage{Title: "Not Found", Status: http.StatusNotFound, Message: message})
}

// BadRequest answers a request whose body could not be read as a form: 413 when
// the body exceeded the size limit, 400 otherwise.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := http.StatusBadRequest, "MALFORMED_REQUEST", "The submitted form could not be parsed"
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status, code, msg = http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "The submitted form is too large"
	}
	LoggerFrom(r).Warn("malformed request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	if WantsJSON(r) {
		JSONError(w, r, status, code, msg, nil, nil)
		return
	}
	render(w, r, status, view.ErrorPage{Title: http.StatusText(status), Status: status, Message: msg})
}

func internalError(w http.ResponseWriter, r *http.Request) {
	const msg = "An internal error occurred"
	if WantsJSON(r) {
		JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", msg, nil, nil)
		return
	}
	render(w, r, http.StatusInternalServerError, view.ErrorPage{Title: "Error", Status: http.StatusInternalServerError, Message: msg})
}
