package site

import (
	"embed"
	"html/template"
	"net/url"
	"strings"

	"biography-site/biography/compose"
	"biography-site/biography/gallery"
)

//go:embed templates/*.html
var templateFiles embed.FS

// viewData is what every template receives.
type viewData struct {
	compose.Page
	Path    string
	Next    string
	Failed  bool
	Message string
}

// cardData carries one section item into a shared partial together with the
// page labels and path.
type cardData struct {
	T    map[string]string
	Path string
	Item any
}

var icons = map[string]string{
	"check-circle":   "✓",
	"alert-triangle": "⚠",
	"x-circle":       "✕",
}

var templateFuncs = template.FuncMap{
	"imageHref": func(path string, ref gallery.Ref) string {
		return path + "?image=" + url.QueryEscape(ref.String())
	},
	"langHref": func(path, code string) string {
		return path + "?lang=" + url.QueryEscape(code)
	},
	"icon": func(name string) string {
		return icons[name]
	},
	"card": func(root viewData, item any) cardData {
		return cardData{T: root.T, Path: root.Path, Item: item}
	},
	"join": strings.Join,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("site").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
}

// safeNext keeps post-unlock redirects on this site.
func safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	if strings.HasPrefix(u.Path, "/unlock") {
		return "/"
	}
	return u.RequestURI()
}
