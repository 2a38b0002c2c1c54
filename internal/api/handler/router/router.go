package router

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/dsp-analytics-api/pkg/apiErrors"
)

// Route descreve um endpoint da API
type Route struct {
	Method      string
	Path        string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // aplicados na ordem da lista
}

// Option configura o Router na criação
type Option func(router *Router)

// WithRoutes registra um grupo de rotas
func WithRoutes(routes ...Route) Option {
	return func(router *Router) {
		router.AddRoutes(routes...)
	}
}

// Router encaminha as requisições pelo httprouter. Rotas inexistentes e
// métodos não aceitos respondem no mesmo formato de erro dos handlers.
type Router struct {
	mux    *httprouter.Router
	routes []Route
}

func New(options ...Option) *Router {
	mux := httprouter.New()
	mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada: "+r.URL.Path, nil)
	})
	mux.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método "+r.Method+" não aceito em "+r.URL.Path, nil)
	})

	router := &Router{mux: mux}
	for _, option := range options {
		option(router)
	}

	return router
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// AddRoutes registra as rotas envolvendo cada handler com seus middlewares
func (r *Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.mux.Handler(route.Method, route.Path, handler)
		r.routes = append(r.routes, route)
	}
}

// Routes devolve as rotas registradas ordenadas por caminho e método
func (r *Router) Routes() []Route {
	routes := make([]Route, len(r.routes))
	copy(routes, r.routes)

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
