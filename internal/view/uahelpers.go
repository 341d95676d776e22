// internal/view/uahelpers.go
//
// User‑Agent and geo template helpers keyed off *requestinfo.RequestInfo.
// Each helper tolerates a nil info so pages render in tests and behind
// handlers that skip the enrich middleware.
package view

import (
	"html/template"

	"github.com/yanizio/folio/internal/requestinfo"
)

func uaFuncMap() template.FuncMap {
	return template.FuncMap{
		"browser": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.Agent.Browser
		},
		"device": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.Agent.Device
		},
		"country": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.Geo.CountryISO
		},
		"isBot": func(i *requestinfo.RequestInfo) bool {
			return i != nil && i.Agent.IsBot
		},
	}
}
