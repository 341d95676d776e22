package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/folio/internal/record"
)

func TestReadKeepsOnlySubmitted(t *testing.T) {
	body := url.Values{
		"blog[title]": {"first", "second"},
		"blog[body]":  {""},
		"book[genre]": {"other entity"},
		"title":       {"flat"},
	}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/blogs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, err := Read(req, "blog", record.Blog.Fields)
	require.NoError(t, err)
	assert.Equal(t, record.Patch{
		record.FieldTitle: "first",
		record.FieldBody:  "",
	}, p)
}

func TestName(t *testing.T) {
	assert.Equal(t, "entry[name]", Name(record.EntryKey, record.FieldName))
}
