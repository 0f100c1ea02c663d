// Package spa implements the single-page-application routing policy that
// sits in front of the static file server: a fallback rewrite for client
// routes and a Content-Type guarantee for HTML responses.
package spa

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const htmlMediaType = "text/html"

// EffectivePath decides which path is served for a request. It returns
// fallback when nothing exists at urlPath under root and accept asks for
// HTML; otherwise urlPath is returned unchanged.
//
// Only the existence check uses the slash-trimmed form of urlPath. An empty
// trimmed path never exists. Traversal sequences are not filtered here.
func EffectivePath(root, urlPath, accept, fallback string) string {
	if !exists(root, strings.Trim(urlPath, "/")) && acceptsHTML(accept) {
		return fallback
	}
	return urlPath
}

func acceptsHTML(accept string) bool {
	return strings.Contains(accept, htmlMediaType)
}

func exists(root, rel string) bool {
	if rel == "" {
		return false
	}
	// Any stat failure, not only ENOENT, counts as missing.
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

// Router applies EffectivePath to GET requests against a fixed document root.
type Router struct {
	root     string
	fallback string
	logger   *slog.Logger
}

func NewRouter(root, fallback string, logger *slog.Logger) *Router {
	return &Router{root: root, fallback: fallback, logger: logger}
}

// Rewrite returns the effective path for r. Requests other than GET keep
// their path. A missing Accept header reads as "" and never triggers the
// fallback.
func (rt *Router) Rewrite(r *http.Request) string {
	if r.Method != http.MethodGet {
		return r.URL.Path
	}

	p := EffectivePath(rt.root, r.URL.Path, r.Header.Get("Accept"), rt.fallback)
	if p != r.URL.Path {
		rt.logger.Debug("spa fallback", "path", r.URL.Path, "effective", p)
	}
	return p
}
