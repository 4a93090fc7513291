// AngelaMos | 2026
// validate_test.go

package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

type createBody struct {
	Name     string `json:"name"     validate:"required,min=1"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type pageQuery struct {
	Page    int `query:"page"     validate:"omitempty,min=1"`
	PerPage int `query:"per_page" validate:"omitempty,min=1,max=100"`
}

type idParams struct {
	UserID string `param:"userID" validate:"required,uuid"`
}

func mountValidated(
	t *testing.T,
	schema *Schema,
	method, path string,
	handler http.HandlerFunc,
) *chi.Mux {
	t.Helper()

	registry := New(Options{})
	require.NoError(t, registry.Add("/v1", Route{
		Name:     "test.route",
		Method:   method,
		Path:     path,
		Validate: schema,
		Handler:  handler,
	}))

	mux := chi.NewRouter()
	require.NoError(t, registry.Mount(mux))
	return mux
}

func TestValidationCollectsAllIssues(t *testing.T) {
	mux := mountValidated(t, &Schema{
		Body: func() any { return &createBody{} },
	}, http.MethodPost, "/users", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on validation failure")
	})

	body := `{"name":"","email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/users",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope core.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Errors, 3)

	fields := make([]string, 0, 3)
	for _, issue := range envelope.Errors {
		assert.Equal(t, "body", issue.Location)
		fields = append(fields, issue.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestValidationRejectsMalformedJSON(t *testing.T) {
	mux := mountValidated(t, &Schema{
		Body: func() any { return &createBody{} },
	}, http.MethodPost, "/users", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/users",
		strings.NewReader("{nope"),
	)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestValidationBindsQueryAndParams(t *testing.T) {
	var gotQuery *pageQuery
	var gotParams *idParams

	mux := mountValidated(t, &Schema{
		Query:  func() any { return &pageQuery{} },
		Params: func() any { return &idParams{} },
	}, http.MethodGet, "/users/{userID}",
		func(w http.ResponseWriter, r *http.Request) {
			validated := ValidatedFrom(r.Context())
			gotQuery = validated.Query.(*pageQuery)
			gotParams = validated.Params.(*idParams)
			w.WriteHeader(http.StatusOK)
		})

	req := httptest.NewRequest(
		http.MethodGet,
		"/v1/users/0a1b2c3d-0000-4000-8000-000000000000?page=2&per_page=50",
		nil,
	)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotQuery.Page)
	assert.Equal(t, 50, gotQuery.PerPage)
	assert.Equal(
		t,
		"0a1b2c3d-0000-4000-8000-000000000000",
		gotParams.UserID,
	)
}

func TestValidationRejectsBadParamAndQueryTogether(t *testing.T) {
	mux := mountValidated(t, &Schema{
		Query:  func() any { return &pageQuery{} },
		Params: func() any { return &idParams{} },
	}, http.MethodGet, "/users/{userID}",
		func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

	req := httptest.NewRequest(
		http.MethodGet,
		"/v1/users/not-a-uuid?page=zero",
		nil,
	)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope core.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	locations := make(map[string]bool)
	for _, issue := range envelope.Errors {
		locations[issue.Location] = true
	}
	assert.True(t, locations["query"])
	assert.True(t, locations["params"])
}

// The raw body is replaced with the validated view, so downstream
// readers see only declared fields.
func TestValidationOverwritesBody(t *testing.T) {
	var raw []byte

	mux := mountValidated(t, &Schema{
		Body: func() any { return &createBody{} },
	}, http.MethodPost, "/users",
		func(w http.ResponseWriter, r *http.Request) {
			raw, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		})

	body := `{"name":"Alice","email":"alice@example.com",` +
		`"password":"longenough","sneaky":"extra"}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/users",
		strings.NewReader(body),
	)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(raw), "sneaky")

	var rebound createBody
	require.NoError(t, json.Unmarshal(raw, &rebound))
	assert.Equal(t, "Alice", rebound.Name)
}

func TestValidatedFromWithoutSchema(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, ValidatedFrom(req.Context()))
}
