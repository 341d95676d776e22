// Package web embeds the default templates and static assets so a single
// binary serves pages without a checkout next to it.  Operators override
// individual templates through theme.dir.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var content embed.FS

// Templates returns the template tree rooted at templates/.
func Templates() fs.FS { return sub("templates") }

// Static returns the asset tree rooted at static/.
func Static() fs.FS { return sub("static") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(content, dir)
	if err != nil {
		panic("web: " + err.Error()) // dir is a compile-time constant
	}
	return f
}
