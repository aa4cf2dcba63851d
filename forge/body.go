package forge

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var bodyTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"check": func(b bool) string {
		if b {
			return "x"
		}
		return " "
	},
}).ParseFS(templatesFS, "templates/*.tmpl"))

// BodyData fills the pull request template.
type BodyData struct {
	Host          HostInfo
	GitHubActions bool
	Lint          bool
	Test          bool
	Install       bool
}

// RenderBody renders the pull request description.
func RenderBody(data BodyData) (string, error) {
	var sb strings.Builder
	if err := bodyTemplate.ExecuteTemplate(&sb, "pr_body.tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render pull request body: %w", err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
