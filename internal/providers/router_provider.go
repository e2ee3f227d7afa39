package providers

import (
	"net/http"
	"vcheck/internal/structures"
)

type Middleware func(http.Handler) http.Handler

type RouterProviderInterface interface {
	Use(mw Middleware)
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes      []structures.Route
	middlewares []Middleware
}

// Use applies mw to every route registered after the call.
func (rp *RouterProvider) Use(mw Middleware) {
	rp.middlewares = append(rp.middlewares, mw)
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(url, methodHandler(http.MethodGet, handler))
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(url, methodHandler(http.MethodPost, handler))
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func (rp *RouterProvider) add(url string, handler http.Handler) {
	for i := len(rp.middlewares) - 1; i >= 0; i-- {
		handler = rp.middlewares[i](handler)
	}
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: handler,
	})
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
