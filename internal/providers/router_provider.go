package providers

import (
	"net/http"

	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

// RouterProvider collects routes with their allowed method so the app can
// mount them on a mux in one pass. Every endpoint answers exactly one method;
// anything else gets a 405 with the Allow header set.
type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(url, http.MethodGet, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(url, http.MethodPost, handler)
}

func (rp *RouterProvider) add(url, method string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandler(method, handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = w.Write([]byte(`{"error":"method not allowed"}`))
			return
		}
		handler.ServeHTTP(w, r)
	})
}
