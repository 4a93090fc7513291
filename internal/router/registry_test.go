// AngelaMos | 2026
// registry_test.go

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegistryURLFor(t *testing.T) {
	registry := New(Options{})
	require.NoError(t, registry.Add("/v1/users",
		Route{
			Name:    "users.get",
			Method:  http.MethodGet,
			Path:    "/{userID}",
			Handler: noopHandler,
		},
		Route{
			Name:    "users.list",
			Method:  http.MethodGet,
			Path:    "/",
			Handler: noopHandler,
		},
	))

	url, err := registry.URLFor("users.get", map[string]string{
		"userID": "abc-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "/v1/users/abc-123", url)

	// Values without a matching placeholder become query parameters.
	url, err = registry.URLFor("users.list", map[string]string{
		"page":     "2",
		"per_page": "50",
	})
	require.NoError(t, err)
	assert.Equal(t, "/v1/users?page=2&per_page=50", url)

	_, err = registry.URLFor("users.unknown", nil)
	assert.Error(t, err)
	assert.Empty(t, registry.SafeURLFor("users.unknown", nil))
}

func TestRegistryRejectsConflictingName(t *testing.T) {
	registry := New(Options{})
	require.NoError(t, registry.Add("/v1/users", Route{
		Name:    "users.get",
		Method:  http.MethodGet,
		Path:    "/{userID}",
		Handler: noopHandler,
	}))

	err := registry.Add("/v1/accounts", Route{
		Name:    "users.get",
		Method:  http.MethodGet,
		Path:    "/{accountID}",
		Handler: noopHandler,
	})
	assert.Error(t, err)
}

func TestRegistryOverwritesSamePathDoc(t *testing.T) {
	registry := New(Options{})
	require.NoError(t, registry.Add("/v1/users", Route{
		Name:        "users.get",
		Method:      http.MethodGet,
		Path:        "/{userID}",
		Description: "first",
		Handler:     noopHandler,
	}))
	require.NoError(t, registry.Add("/v1/users", Route{
		Name:        "users.get",
		Method:      http.MethodGet,
		Path:        "/{userID}",
		Description: "second",
		Handler:     noopHandler,
	}))

	docs := registry.Docs()
	require.Len(t, docs, 1)
	assert.Equal(t, "second", docs[0].Description)
}

func TestRegistryFrozenRejectsMutation(t *testing.T) {
	registry := New(Options{})
	registry.Freeze()

	err := registry.Add("/v1/users", Route{
		Name:    "users.get",
		Method:  http.MethodGet,
		Path:    "/",
		Handler: noopHandler,
	})
	assert.Error(t, err)

	assert.Error(t, registry.Mount(chi.NewRouter()))
}

func TestRegistryChainOrder(t *testing.T) {
	var order []string

	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				},
			)
		}
	}

	registry := New(Options{DefaultLimiter: tag("limiter")})
	require.NoError(t, registry.Add("/v1/things", Route{
		Name:   "things.create",
		Method: http.MethodPost,
		Path:   "/",
		Middlewares: []func(http.Handler) http.Handler{
			tag("auth"),
		},
		Handler: func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusOK)
		},
	}))

	mux := chi.NewRouter()
	require.NoError(t, registry.Mount(mux))
	registry.Freeze()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/things", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"limiter", "auth", "handler"}, order)
}

func TestRegistrySkipRateLimit(t *testing.T) {
	limited := false
	limiter := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited = true
			next.ServeHTTP(w, r)
		})
	}

	registry := New(Options{DefaultLimiter: limiter})
	require.NoError(t, registry.Add("/v1/health", Route{
		Name:          "health.check",
		Method:        http.MethodGet,
		Path:          "/",
		SkipRateLimit: true,
		Handler:       noopHandler,
	}))

	mux := chi.NewRouter()
	require.NoError(t, registry.Mount(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, limited)
}
