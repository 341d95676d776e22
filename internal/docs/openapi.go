package docs

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/yanizio/folio/internal/component"
)

// Document is the subset of OpenAPI 3.0 the generator emits.
type Document struct {
	OpenAPI string                          `json:"openapi"`
	Info    Info                            `json:"info"`
	Paths   map[string]map[string]Operation `json:"paths"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Operation struct {
	Summary     string              `json:"summary,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses"`
	RequireAuth bool                `json:"x-requires-login,omitempty"`
}

type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
	Schema   Schema `json:"schema"`
}

type Schema struct {
	Type string `json:"type"`
}

type Response struct {
	Description string `json:"description"`
}

var pathParam = regexp.MustCompile(`\{([^}:]+)(:[^}]*)?\}`)

// OpenAPI renders eps as an OpenAPI 3.0 document.
func OpenAPI(title string, eps []component.Endpoint) Document {
	doc := Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: title, Version: "1.0.0"},
		Paths:   map[string]map[string]Operation{},
	}
	for _, ep := range eps {
		path := pathParam.ReplaceAllString(ep.Path, "{$1}")
		op := Operation{
			Summary:     ep.Summary,
			Responses:   responsesFor(ep),
			RequireAuth: ep.Guarded,
		}
		for _, m := range pathParam.FindAllStringSubmatch(ep.Path, -1) {
			op.Parameters = append(op.Parameters, Parameter{
				Name: m[1], In: "path", Required: true, Schema: Schema{Type: "string"},
			})
		}
		if doc.Paths[path] == nil {
			doc.Paths[path] = map[string]Operation{}
		}
		doc.Paths[path][strings.ToLower(ep.Method)] = op
	}
	return doc
}

func responsesFor(ep component.Endpoint) map[string]Response {
	res := map[string]Response{}
	if ep.Method == http.MethodGet {
		res["200"] = Response{Description: "HTML page"}
	} else {
		res["303"] = Response{Description: "Redirect after the write"}
	}
	if ep.Guarded {
		res["303"] = Response{Description: "Redirect; anonymous requests go to the login form"}
	}
	return res
}
