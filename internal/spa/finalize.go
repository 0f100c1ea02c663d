package spa

import (
	"net/http"
	"strings"
)

// Finalize adds Content-Type: text/html when effectivePath names an .html
// document. The value is added, not set, so a Content-Type already chosen
// by the file server stays in the header set alongside it.
func Finalize(effectivePath string, h http.Header) {
	if strings.HasSuffix(effectivePath, ".html") {
		h.Add("Content-Type", htmlMediaType)
	}
}
