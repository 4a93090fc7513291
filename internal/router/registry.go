// AngelaMos | 2026
// registry.go

package router

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Route declares one endpoint: where it lives, what protects it, what
// shapes it accepts and returns. The same descriptor drives mounting
// and documentation.
type Route struct {
	Name        string
	Method      string
	Path        string
	Description string
	Tags        []string
	Auth        bool

	// SkipRateLimit opts the route out of the registry default
	// limiter; Limiter overrides it with a route-specific policy.
	SkipRateLimit bool
	Limiter       func(http.Handler) http.Handler

	Middlewares []func(http.Handler) http.Handler
	Validate    *Schema
	Responses   map[int]any
	Handler     http.HandlerFunc
}

// Doc is the documentation entry derived from a registered route.
type Doc struct {
	Name         string         `json:"name"`
	Method       string         `json:"method"`
	Path         string         `json:"path"`
	Description  string         `json:"description"`
	Tags         []string       `json:"tags,omitempty"`
	RequiresAuth bool           `json:"requires_auth"`
	Request      RequestDoc     `json:"request"`
	Responses    map[int]string `json:"responses,omitempty"`
}

type RequestDoc struct {
	Body    string `json:"body,omitempty"`
	Query   string `json:"query,omitempty"`
	Params  string `json:"params,omitempty"`
	Headers string `json:"headers,omitempty"`
}

type mountedRoute struct {
	Route
	fullPath string
}

// Registry is built once at bootstrap, frozen, and then read-only for
// the lifetime of the process.
type Registry struct {
	defaultLimiter func(http.Handler) http.Handler
	frozen         bool
	names          map[string]string
	docs           map[string]Doc
	routes         []mountedRoute
}

type Options struct {
	// DefaultLimiter wraps every route unless the route disables or
	// overrides it.
	DefaultLimiter func(http.Handler) http.Handler
}

func New(opts Options) *Registry {
	return &Registry{
		defaultLimiter: opts.DefaultLimiter,
		names:          make(map[string]string),
		docs:           make(map[string]Doc),
	}
}

// Add registers routes under a module base path. Re-registering the
// same {method, path} pair overwrites the previous descriptor.
func (g *Registry) Add(basePath string, routes ...Route) error {
	if g.frozen {
		return fmt.Errorf("route registry is frozen")
	}

	for _, rt := range routes {
		if rt.Name == "" {
			return fmt.Errorf("route %s %s has no name", rt.Method, rt.Path)
		}
		if rt.Handler == nil {
			return fmt.Errorf("route %q has no handler", rt.Name)
		}

		fullPath := joinPath(basePath, rt.Path)

		if existing, ok := g.names[rt.Name]; ok && existing != fullPath {
			return fmt.Errorf(
				"route name %q already registered for %s",
				rt.Name,
				existing,
			)
		}
		g.names[rt.Name] = fullPath

		docKey := rt.Method + " " + fullPath
		g.docs[docKey] = buildDoc(rt, fullPath)

		g.routes = append(g.routes, mountedRoute{
			Route:    rt,
			fullPath: fullPath,
		})
	}

	return nil
}

// Mount wires every registered route onto the chi router with the
// fixed chain: rate limiter, validator, route middleware, handler.
func (g *Registry) Mount(r chi.Router) error {
	if g.frozen {
		return fmt.Errorf("route registry is frozen")
	}

	for _, rt := range g.routes {
		var chain http.Handler = rt.Handler

		for i := len(rt.Middlewares) - 1; i >= 0; i-- {
			chain = rt.Middlewares[i](chain)
		}

		if rt.Validate != nil {
			chain = validateRequest(rt.Validate)(chain)
		}

		limiter := g.defaultLimiter
		if rt.Limiter != nil {
			limiter = rt.Limiter
		}
		if limiter != nil && !rt.SkipRateLimit {
			chain = limiter(chain)
		}

		r.Method(rt.Method, rt.fullPath, chain)
	}

	return nil
}

// Freeze makes the registry immutable. Called once bootstrap has
// mounted everything.
func (g *Registry) Freeze() {
	g.frozen = true
}

// URLFor synthesizes the URL for a named route. Provided values
// replace {placeholders}; leftovers become query-string parameters.
func (g *Registry) URLFor(
	name string,
	params map[string]string,
) (string, error) {
	path, ok := g.names[name]
	if !ok {
		return "", fmt.Errorf("unknown route name %q", name)
	}

	leftover := make(map[string]string, len(params))
	for key, value := range params {
		placeholder := "{" + key + "}"
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
		} else {
			leftover[key] = value
		}
	}

	if len(leftover) > 0 {
		values := url.Values{}
		for key, value := range leftover {
			values.Set(key, value)
		}
		path += "?" + values.Encode()
	}

	return path, nil
}

// SafeURLFor is URLFor without the error: unknown names yield "".
func (g *Registry) SafeURLFor(name string, params map[string]string) string {
	path, err := g.URLFor(name, params)
	if err != nil {
		return ""
	}
	return path
}

// Docs returns one entry per distinct {method, path}, ordered by path
// then method, for downstream documentation generation.
func (g *Registry) Docs() []Doc {
	docs := make([]Doc, 0, len(g.docs))
	for _, doc := range g.docs {
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Path != docs[j].Path {
			return docs[i].Path < docs[j].Path
		}
		return docs[i].Method < docs[j].Method
	})

	return docs
}

func buildDoc(rt Route, fullPath string) Doc {
	doc := Doc{
		Name:         rt.Name,
		Method:       rt.Method,
		Path:         fullPath,
		Description:  rt.Description,
		Tags:         rt.Tags,
		RequiresAuth: rt.Auth,
	}

	if rt.Validate != nil {
		doc.Request = RequestDoc{
			Body:    typeName(rt.Validate.Body),
			Query:   typeName(rt.Validate.Query),
			Params:  typeName(rt.Validate.Params),
			Headers: typeName(rt.Validate.Headers),
		}
	}

	if len(rt.Responses) > 0 {
		doc.Responses = make(map[int]string, len(rt.Responses))
		for status, shape := range rt.Responses {
			doc.Responses[status] = fmt.Sprintf("%T", shape)
		}
	}

	return doc
}

func typeName(proto func() any) string {
	if proto == nil {
		return ""
	}
	return fmt.Sprintf("%T", proto())
}

func joinPath(base, sub string) string {
	base = strings.TrimSuffix(base, "/")
	if sub == "" || sub == "/" {
		if base == "" {
			return "/"
		}
		return base
	}
	if !strings.HasPrefix(sub, "/") {
		sub = "/" + sub
	}
	return base + sub
}
