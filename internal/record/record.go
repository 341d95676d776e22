// internal/record/record.go
//
// Domain types shared by the stores, the route layer, and templates.
//
// Context
// -------
// Both apps persist the same document shape.  A Record is a blog post in
// the blog app and a book in the library app; only the entity
// configuration (entity.go) differs.  Entries are the library's wishlist
// rows and have no relationship to records or users.
//
// Notes
// -----
//   - Field names in Patch keys match the persisted document keys
//     (`title`, `releasedate`, ...), so stores can apply a Patch without a
//     translation table.
//   - Oxford commas, two spaces after periods.
package record

import (
	"sort"
	"time"
)

// Canonical field keys.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldGenre       = "genre"
	FieldImage       = "image"
	FieldBody        = "body"
	FieldReleaseDate = "releasedate"
	FieldStatus      = "status"
	FieldName        = "name"
)

// Status values used by the activate and deactivate pages.  Status is free
// text; these are conventions only.
const (
	StatusActivated   = "activated"
	StatusDeactivated = "deactivated"
)

// Record is one blog post or book.
type Record struct {
	ID          string
	Title       string
	Author      string
	Genre       string
	Image       string
	Body        string
	ReleaseDate string
	Status      string
	Created     time.Time
}

// Get returns the value stored under a canonical field key.
func (r *Record) Get(field string) string {
	switch field {
	case FieldTitle:
		return r.Title
	case FieldAuthor:
		return r.Author
	case FieldGenre:
		return r.Genre
	case FieldImage:
		return r.Image
	case FieldBody:
		return r.Body
	case FieldReleaseDate:
		return r.ReleaseDate
	case FieldStatus:
		return r.Status
	}
	return ""
}

// Apply copies every known key of p onto r.  Unknown keys are ignored.
func (r *Record) Apply(p Patch) {
	for k, v := range p {
		switch k {
		case FieldTitle:
			r.Title = v
		case FieldAuthor:
			r.Author = v
		case FieldGenre:
			r.Genre = v
		case FieldImage:
			r.Image = v
		case FieldBody:
			r.Body = v
		case FieldReleaseDate:
			r.ReleaseDate = v
		case FieldStatus:
			r.Status = v
		}
	}
}

// Entry is a library wishlist row.
type Entry struct {
	ID      string
	Title   string
	Author  string
	Genre   string
	Name    string
	Created time.Time
}

// Apply copies every known key of p onto e.
func (e *Entry) Apply(p Patch) {
	for k, v := range p {
		switch k {
		case FieldTitle:
			e.Title = v
		case FieldAuthor:
			e.Author = v
		case FieldGenre:
			e.Genre = v
		case FieldName:
			e.Name = v
		}
	}
}

// Patch carries only the fields a form actually submitted.  Absent keys are
// left untouched by updates.
type Patch map[string]string

// Keys returns the patch keys in sorted order so stores emit stable
// statements.
func (p Patch) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		if IsRecordField(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// IsRecordField reports whether key names a persisted record field.
func IsRecordField(key string) bool {
	switch key {
	case FieldTitle, FieldAuthor, FieldGenre, FieldImage, FieldBody,
		FieldReleaseDate, FieldStatus:
		return true
	}
	return false
}
