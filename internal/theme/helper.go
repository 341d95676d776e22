package theme

import (
	"html/template"
	"path"
)

// AssetPrefix is where static files are mounted.
const AssetPrefix = "/static/"

// FuncMap returns the theme-level template helpers.
//
//	{{ asset "app.css" }} → /static/app.css
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"asset": func(p string) string { return path.Join(AssetPrefix, p) },
	}
}
