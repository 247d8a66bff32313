package utils

import "net/http"

type Middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps h so the first middleware listed is outermost.
func ApplyMiddleware(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
