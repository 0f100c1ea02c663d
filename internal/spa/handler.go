package spa

import (
	"log/slog"

	"github.com/playperu/spaserve/internal/fileserver"
)

// NewHandler serves root with the fallback rewrite and the HTML
// Content-Type finalizer bound into the file server's hooks.
func NewHandler(root, fallback string, logger *slog.Logger) *fileserver.Server {
	rt := NewRouter(root, fallback, logger)
	return fileserver.New(root,
		fileserver.WithRewrite(rt.Rewrite),
		fileserver.WithFinalize(Finalize),
		fileserver.WithLogger(logger),
	)
}
