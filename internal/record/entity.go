package record

import "fmt"

// Field describes one form input.
type Field struct {
	Name      string // canonical key, also the form sub-key
	Label     string
	Multiline bool // render as <textarea>
}

// Features toggles the library-only route groups.
type Features struct {
	Entries  bool // GET|POST /<prefix>/list
	Listings bool // /<prefix>/all<prefix>, /<prefix>/deactivated<prefix>
	Request  bool // GET /<prefix>/{id}/request
	APIDocs  bool // /api-docs, /api-docs.json
}

// Entity is the configuration one route-set generator needs to serve an
// app: where it lives, how its forms are keyed, and which pages it has.
type Entity struct {
	Key      string // singular form key: blog[title]
	Prefix   string // URL prefix and collection name: /blogs
	Label    string // human name: "Blog"
	Fields   []Field
	Features Features

	// Views maps a logical page to a template name when they differ.
	Views map[string]string
}

// Path joins the entity prefix with an optional suffix.
func (e Entity) Path(suffix string) string {
	if suffix == "" {
		return "/" + e.Prefix
	}
	return "/" + e.Prefix + "/" + suffix
}

// View resolves the template name for a logical page.
func (e Entity) View(page string) string {
	if v, ok := e.Views[page]; ok {
		return v
	}
	return page
}

// FormKey returns the namespaced form key for a field: blog[title].
func (e Entity) FormKey(field string) string {
	return e.Key + "[" + field + "]"
}

var recordFields = []Field{
	{Name: FieldTitle, Label: "Title"},
	{Name: FieldAuthor, Label: "Author"},
	{Name: FieldGenre, Label: "Genre"},
	{Name: FieldImage, Label: "Image URL"},
	{Name: FieldReleaseDate, Label: "Release date"},
	{Name: FieldStatus, Label: "Status"},
	{Name: FieldBody, Label: "Body", Multiline: true},
}

// EntryKey is the form namespace of list entries.
const EntryKey = "entry"

// EntryFields are the inputs of the wishlist form.
var EntryFields = []Field{
	{Name: FieldTitle, Label: "Title"},
	{Name: FieldAuthor, Label: "Author"},
	{Name: FieldGenre, Label: "Genre"},
	{Name: FieldName, Label: "Your name"},
}

// Blog is the blog app.
var Blog = Entity{
	Key:    "blog",
	Prefix: "blogs",
	Label:  "Blog",
	Fields: recordFields,
}

// Book is the library app.
var Book = Entity{
	Key:    "book",
	Prefix: "books",
	Label:  "Book",
	Fields: recordFields,
	Features: Features{
		Entries:  true,
		Listings: true,
		Request:  true,
		APIDocs:  true,
	},
	Views: map[string]string{
		"all":         "allbooks",
		"deactivated": "deactivatedbooks",
	},
}

// Lookup returns the entity registered under key.
func Lookup(key string) (Entity, error) {
	switch key {
	case Blog.Key:
		return Blog, nil
	case Book.Key:
		return Book, nil
	}
	return Entity{}, fmt.Errorf("record: unknown entity %q", key)
}
