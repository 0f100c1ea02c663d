package spa

import (
	"net/http"
	"slices"
	"testing"
)

func TestFinalize(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		existing []string
		want     []string
	}{
		{"html adds header", "index.html", nil, []string{"text/html"}},
		{"html keeps server type", "/about.html", []string{"text/html; charset=utf-8"}, []string{"text/html; charset=utf-8", "text/html"}},
		{"script untouched", "/app.js", []string{"text/javascript; charset=utf-8"}, []string{"text/javascript; charset=utf-8"}},
		{"no extension", "/dashboard", nil, nil},
		{"root", "/", nil, nil},
		{"htm is not html", "/legacy.htm", nil, nil},
		{"html directory", "/docs.html/", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, v := range tt.existing {
				h.Add("Content-Type", v)
			}

			Finalize(tt.path, h)

			if got := h.Values("Content-Type"); !slices.Equal(got, tt.want) {
				t.Errorf("Content-Type = %q, want %q", got, tt.want)
			}
		})
	}
}
