package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// addRoutes registers the extra routes from mount and sends everything
// else to files, whatever the method.
func addRoutes(r chi.Router, files http.Handler, mount func(r chi.Router)) {
	if mount != nil {
		mount(r)
	}

	r.Handle("/*", files)
	r.MethodNotAllowed(files.ServeHTTP)
}
