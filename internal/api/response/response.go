// Package response writes FastAPI-compatible JSON bodies: successful
// responses are the bare resource, errors are {"detail": ...}.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ErrorBody is the error envelope. Detail is a string or a list of
// ValidationIssue.
type ErrorBody struct {
	Detail any `json:"detail"`
}

// ValidationIssue mirrors one entry of a FastAPI 422 detail list
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// Error sends {"detail": detail}
func Error(w http.ResponseWriter, status int, detail any) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

// Unauthorized sends a 401 with the bearer challenge
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, detail)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

// TooManyRequests sends a 429 response
func TooManyRequests(w http.ResponseWriter, detail string) {
	Error(w, http.StatusTooManyRequests, detail)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}

// Unprocessable sends a 422 with a single issue at loc
func Unprocessable(w http.ResponseWriter, msg string, loc ...string) {
	Error(w, http.StatusUnprocessableEntity, []ValidationIssue{{Loc: loc, Msg: msg, Type: "value_error"}})
}

// Validation sends a 422 listing every failed field of a validator error.
// Other errors are reported as a single body issue.
func Validation(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Unprocessable(w, err.Error(), "body")
		return
	}

	issues := make([]ValidationIssue, 0, len(verrs))
	for _, e := range verrs {
		issues = append(issues, ValidationIssue{
			Loc:  []string{"body", e.Field()},
			Msg:  message(e),
			Type: "value_error." + e.Tag(),
		})
	}
	Error(w, http.StatusUnprocessableEntity, issues)
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "gt", "gte", "lt", "lte":
		return "must be " + comparison(e.Tag()) + " " + e.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "numeric":
		return "must contain only digits"
	case "phone":
		return "phone number must be 10 digits"
	default:
		return "validation failed on " + e.Tag()
	}
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte":
		return "greater than or equal to"
	case "lt":
		return "less than"
	default:
		return "less than or equal to"
	}
}
