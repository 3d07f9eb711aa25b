package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Rrens/crop-advisory/internal/api/middleware"
	"github.com/Rrens/crop-advisory/internal/api/response"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/security"
	"github.com/Rrens/crop-advisory/internal/service"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// maxUploadSize bounds image and avatar uploads
const maxUploadSize = 10 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := security.NewValidator()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads and validates a JSON body. It writes the error response
// itself and reports whether the handler may continue.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			response.Unprocessable(w, "field required", "body")
			return false
		}
		response.Unprocessable(w, "invalid JSON body: "+err.Error(), "body")
		return false
	}
	if reflect.Indirect(reflect.ValueOf(dst)).Kind() != reflect.Struct {
		return true
	}
	if err := validate.Struct(dst); err != nil {
		response.Validation(w, err)
		return false
	}
	return true
}

// userID reads the authenticated user. The auth middleware guarantees it
// on protected routes.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
	}
	return id, ok
}

// pathID parses an integer URL parameter
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		response.Unprocessable(w, "value is not a valid integer", "path", name)
		return 0, false
	}
	return id, true
}

// queryParams collects typed query values and remembers the first parse
// failure.
type queryParams struct {
	values map[string][]string
	err    error
	field  string
}

func query(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

func (q *queryParams) String(name string) string {
	if v := q.values[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (q *queryParams) Int(name string, def int) int {
	s := q.String(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		q.fail(name, fmt.Errorf("value is not a valid non-negative integer"))
		return def
	}
	return n
}

func (q *queryParams) Bool(name string) *bool {
	s := q.String(name)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		q.fail(name, fmt.Errorf("value could not be parsed to a boolean"))
		return nil
	}
	return &b
}

func (q *queryParams) fail(name string, err error) {
	if q.err == nil {
		q.err, q.field = err, name
	}
}

// ok writes a 422 for the first bad parameter
func (q *queryParams) ok(w http.ResponseWriter) bool {
	if q.err != nil {
		response.Unprocessable(w, q.err.Error(), "query", q.field)
		return false
	}
	return true
}

// readImage reads an uploaded image form field and sniffs its type
func readImage(w http.ResponseWriter, r *http.Request, field string) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile(field)
	if err != nil {
		response.Unprocessable(w, "field required", "body", field)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "failed to read upload")
		return nil, "", false
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		response.BadRequest(w, "File must be an image")
		return nil, "", false
	}
	return data, mtype.String(), true
}

// fail maps a service error to a status. notFound names the missing
// resource.
func fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if notFound == "" {
			notFound = "Not found"
		}
		response.NotFound(w, notFound)
	case errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrTooManyAttempts),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, security.ErrInvalidPhone),
		errors.Is(err, service.ErrUnsupportedImage),
		errors.Is(err, service.ErrInvalidTargetPrice):
		response.BadRequest(w, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.InternalError(w, "Internal server error")
	}
}
