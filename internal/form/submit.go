// internal/form/submit.go
//
// Form decoding for the record pages.
//
// Context
//   Record forms namespace their inputs by entity key (blog[title],
//   book[body], entry[name]).  Read parses the POST body and returns only
//   the fields the browser actually sent, so a partial form yields a
//   partial patch.  Cleaning is the caller's job; Read never alters values.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package form

import (
	"net/http"

	"github.com/yanizio/folio/internal/record"
)

// Name returns the namespaced input name: key[field].
func Name(key, field string) string { return key + "[" + field + "]" }

// Read parses r and collects the submitted key[field] values for fields.
// Repeated inputs keep the first value.
func Read(r *http.Request, key string, fields []record.Field) (record.Patch, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	p := record.Patch{}
	for _, f := range fields {
		if vs, ok := r.PostForm[Name(key, f.Name)]; ok && len(vs) > 0 {
			p[f.Name] = vs[0]
		}
	}
	return p, nil
}
