package view

import (
	"html/template"
	"time"

	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/theme"
)

// excerptRunes is the index-page body preview length.
const excerptRunes = 100

func (v *Renderer) buildFuncMap() template.FuncMap {
	fm := template.FuncMap{
		"dict":    dict,
		"markup":  v.markup,
		"excerpt": func(body string) string { return v.san.Excerpt(body, excerptRunes) },
		"value":   value,
		"date":    date,
	}
	for k, f := range theme.FuncMap() {
		fm[k] = f
	}
	for k, f := range uaFuncMap() { // UA and geo helpers
		fm[k] = f
	}
	return fm
}

// markup renders a stored body.  Bodies are cleaned on write; cleaning
// again on read covers rows written by other tools.
func (v *Renderer) markup(body string) template.HTML {
	return template.HTML(v.san.Body(body))
}

// value reads a record field by key: {{ value .Record "title" }}.
func value(r *record.Record, field string) string {
	if r == nil {
		return ""
	}
	return r.Get(field)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
