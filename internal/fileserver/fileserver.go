// Package fileserver serves a directory tree over HTTP and exposes two
// extension points: a rewrite hook that picks the path to serve before any
// file lookup, and a finalize hook that may edit response headers before
// they are written.
package fileserver

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// RewriteFunc returns the path to serve for r.
type RewriteFunc func(r *http.Request) string

// FinalizeFunc edits h before the header block for effectivePath is sent.
type FinalizeFunc func(effectivePath string, h http.Header)

type Option func(*Server)

func WithRewrite(fn RewriteFunc) Option {
	return func(s *Server) { s.rewrite = fn }
}

func WithFinalize(fn FinalizeFunc) Option {
	return func(s *Server) { s.finalize = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// Server is safe for concurrent use; it holds no per-request state.
type Server struct {
	fs       http.FileSystem
	dirs     http.Handler
	rewrite  RewriteFunc
	finalize FinalizeFunc
	logger   *slog.Logger
}

func New(root string, opts ...Option) *Server {
	fsys := http.Dir(root)
	s := &Server{
		fs:     fsys,
		dirs:   http.FileServer(fsys),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	effective := r.URL.Path
	if s.rewrite != nil {
		effective = s.rewrite(r)
	}
	if s.finalize != nil {
		w = &hookWriter{
			ResponseWriter: w,
			before:         func(h http.Header) { s.finalize(effective, h) },
		}
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Unsupported method ("+r.Method+")", http.StatusNotImplemented)
		return
	}

	s.serve(w, r, effective)
}

// serve streams name from the document root. Regular files go through
// http.ServeContent so the request URL never drives a redirect; directories
// are handed to http.FileServer for index lookup and listings.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, name string) {
	upath := path.Clean("/" + name)

	f, err := s.fs.Open(upath)
	if err != nil {
		s.fail(w, r, upath, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.fail(w, r, upath, err)
		return
	}

	if info.IsDir() {
		if strings.HasSuffix(name, "/") && upath != "/" {
			upath += "/"
		}
		s.dirs.ServeHTTP(w, withPath(r, upath))
		return
	}
	if strings.HasSuffix(name, "/") {
		s.fail(w, r, upath, fs.ErrNotExist)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	msg, code := toHTTPError(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("serving file", "path", name, "error", err)
	}
	http.Error(w, msg, code)
}

func toHTTPError(err error) (msg string, code int) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "404 page not found", http.StatusNotFound
	case errors.Is(err, fs.ErrPermission):
		return "403 Forbidden", http.StatusForbidden
	default:
		return "500 Internal Server Error", http.StatusInternalServerError
	}
}

func withPath(r *http.Request, p string) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = p
	r2.URL.RawPath = ""
	return r2
}
