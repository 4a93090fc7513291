// AngelaMos | 2026
// validate.go

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

// Schema bundles the request shapes for one route. Each entry is a
// prototype factory returning a pointer to a tagged struct; a nil
// entry skips that location.
type Schema struct {
	Body    func() any
	Query   func() any
	Params  func() any
	Headers func() any
}

// Validated holds the decoded, validated request values exposed to the
// handler.
type Validated struct {
	Body    any
	Query   any
	Params  any
	Headers any
}

type contextKey string

const validatedKey contextKey = "validated"

// ValidatedFrom returns the validated view of the request, or nil when
// the route declared no schema.
func ValidatedFrom(ctx context.Context) *Validated {
	if v, ok := ctx.Value(validatedKey).(*Validated); ok {
		return v
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param", "header"} {
			if name := fld.Tag.Get(tag); name != "" && name != "-" {
				return strings.SplitN(name, ",", 2)[0]
			}
		}
		return fld.Name
	})

	return v
}

// validateRequest runs every declared schema independently, collecting
// all issues before responding, so a client sees its complete list of
// problems in one round trip.
func validateRequest(schema *Schema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var issues []core.FieldError
			out := &Validated{}

			if schema.Body != nil {
				body := schema.Body()
				issues = append(issues, decodeBody(r, body)...)
				issues = append(issues, structIssues("body", body)...)
				out.Body = body
			}

			if schema.Query != nil {
				query := schema.Query()
				issues = append(issues, bindValues(
					query, "query", func(name string) string {
						return r.URL.Query().Get(name)
					})...)
				issues = append(issues, structIssues("query", query)...)
				out.Query = query
			}

			if schema.Params != nil {
				params := schema.Params()
				issues = append(issues, bindValues(
					params, "param", func(name string) string {
						return chi.URLParam(r, name)
					})...)
				issues = append(issues, structIssues("params", params)...)
				out.Params = params
			}

			if schema.Headers != nil {
				headers := schema.Headers()
				issues = append(issues, bindValues(
					headers, "header", r.Header.Get)...)
				issues = append(issues, structIssues("headers", headers)...)
				out.Headers = headers
			}

			if len(issues) > 0 {
				core.JSONError(w, core.ValidationError(issues))
				return
			}

			// The raw body is replaced with the validated view; query,
			// path, and header values stay untouched on the request
			// and are reachable only through ValidatedFrom.
			if out.Body != nil {
				raw, err := json.Marshal(out.Body)
				if err == nil {
					r.Body = io.NopCloser(bytes.NewReader(raw))
					r.ContentLength = int64(len(raw))
				}
			}

			ctx := context.WithValue(r.Context(), validatedKey, out)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func decodeBody(r *http.Request, dest any) []core.FieldError {
	if r.Body == nil {
		return []core.FieldError{{
			Location: "body",
			Message:  "request body is required",
		}}
	}

	err := json.NewDecoder(r.Body).Decode(dest)
	if errors.Is(err, io.EOF) {
		return []core.FieldError{{
			Location: "body",
			Message:  "request body is required",
		}}
	}
	if err != nil {
		return []core.FieldError{{
			Location: "body",
			Message:  "invalid JSON body",
		}}
	}

	return nil
}

func structIssues(location string, v any) []core.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []core.FieldError{{
			Location: location,
			Message:  "invalid value",
		}}
	}

	issues := make([]core.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, core.FieldError{
			Location: location,
			Field:    fe.Field(),
			Message:  messageFor(fe),
		})
	}
	return issues
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}

// bindValues copies string values into a tagged struct, coercing the
// basic kinds. Absent values leave the field at its zero value so
// defaults can be applied downstream.
func bindValues(
	dest any,
	tag string,
	get func(name string) string,
) []core.FieldError {
	var issues []core.FieldError

	val := reflect.ValueOf(dest).Elem()
	typ := val.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}

		raw := get(name)
		if raw == "" {
			continue
		}

		if err := setField(val.Field(i), raw); err != nil {
			issues = append(issues, core.FieldError{
				Location: location(tag),
				Field:    name,
				Message:  err.Error(),
			})
		}
	}

	return issues
}

func location(tag string) string {
	switch tag {
	case "query":
		return "query"
	case "param":
		return "params"
	case "header":
		return "headers"
	default:
		return tag
	}
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("must be a valid integer")
		}
		field.SetInt(parsed)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("must be a valid boolean")
		}
		field.SetBool(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("must be a valid number")
		}
		field.SetFloat(parsed)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}

	return nil
}
