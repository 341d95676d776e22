// internal/view/render.go
//
// Central view engine: template lookup, override chain, func-map injection,
// and an LRU of parsed *template.Template* sets.
//
// Lookup precedence (first hit wins), via internal/theme:
//   1. <theme.dir>/<group>/<name>.html
//   2. embedded templates/<group>/<name>.html
//   3. embedded templates/records/<name>.html
//
// Every page set is the base layout (group "layout", name "base") plus the
// page file.  Pages wrap their markup in {{ define "content" }}; the layout
// pulls it in.
//
// execName()
// ----------
//   • If the page defines "content", we run the layout ("base").
//   • Else the page is standalone and we run "<name>.html" directly.
//
// Concurrency
// -----------
// Parsed sets are cached in an LRU.  Concurrent misses for the same key
// share one parse through singleflight.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/folio/internal/cache"
	"github.com/yanizio/folio/internal/metrics"
	"github.com/yanizio/folio/internal/sanitize"
	"github.com/yanizio/folio/internal/theme"
)

// Layout coordinates.
const (
	LayoutGroup = "layout"
	LayoutName  = "base"
)

// Renderer is safe for concurrent use.
type Renderer struct {
	theme *theme.Theme
	san   *sanitize.Sanitizer
	lru   *cache.LRU
	sfg   singleflight.Group
	funcs template.FuncMap
}

// New builds a Renderer over th.  Sanitizer backs the markup and excerpt
// helpers.
func New(th *theme.Theme, san *sanitize.Sanitizer) *Renderer {
	v := &Renderer{
		theme: th,
		san:   san,
		lru:   cache.New(256),
	}
	v.funcs = v.buildFuncMap()
	return v
}

//
// public helpers
//

// Render executes group/name into a buffer and writes it with status.
// Nothing reaches w when parsing or execution fails, so callers can still
// send an error page.
func (v *Renderer) Render(w http.ResponseWriter, status int, group, name string, data any) error {
	var buf bytes.Buffer
	if err := v.Execute(&buf, group, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Execute runs group/name against data.
func (v *Renderer) Execute(buf *bytes.Buffer, group, name string, data any) error {
	t, err := v.load(group, name)
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(buf, execName(t, name), data)
}

// Purge forgets every parsed set so theme edits show up.
func (v *Renderer) Purge() { v.lru.Purge() }

//
// internal: load
//

func (v *Renderer) load(group, name string) (*template.Template, error) {
	key := strings.Join([]string{group, name}, "::")

	if t, ok := v.lru.Get(key); ok {
		return t.(*template.Template), nil
	}

	res, err, _ := v.sfg.Do(key, func() (any, error) {
		t, err := v.parse(group, name)
		if err != nil {
			return nil, err
		}
		metrics.TemplateLoads.Inc()
		v.lru.Add(key, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*template.Template), nil
}

// parse builds the layout plus page set.
func (v *Renderer) parse(group, name string) (*template.Template, error) {
	pageFS, pagePath, err := v.theme.Resolve(group, name)
	if err != nil {
		return nil, err
	}
	layoutFS, layoutPath, err := v.theme.Resolve(LayoutGroup, LayoutName)
	if err != nil {
		return nil, err
	}

	t := template.New(name).Funcs(v.funcs)
	if t, err = t.ParseFS(layoutFS, layoutPath); err != nil {
		return nil, err
	}
	if t, err = t.ParseFS(pageFS, pagePath); err != nil {
		return nil, err
	}
	return t, nil
}

// execName picks the template name to execute.
func execName(t *template.Template, name string) string {
	if t.Lookup("content") != nil {
		return LayoutName
	}
	return name + ".html"
}
