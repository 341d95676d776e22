package view

import (
	"html/template"

	"github.com/yanizio/folio/internal/auth"
	"github.com/yanizio/folio/internal/head"
	"github.com/yanizio/folio/internal/record"
	"github.com/yanizio/folio/internal/requestinfo"
)

// Page is the data every template receives.
type Page struct {
	Entity      record.Entity
	Head        *head.Builder
	CurrentUser *auth.Identity
	Flashes     []string
	CSRFField   template.HTML
	CaptchaID   string
	Info        *requestinfo.RequestInfo
	Error       string

	Record  *record.Record
	Records []record.Record
	Entries []record.Entry
	Data    map[string]any
}
