// Package changelog renders and persists release notes.
package changelog

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/slipway-dev/slipway/internal/domain"
)

// Ensure Renderer implements domain.ChangelogRenderer.
var _ domain.ChangelogRenderer = (*Renderer)(nil)

// Renderer turns a release candidate into markdown release notes. The
// template is configurable; the built-in one groups commits by type with
// breaking changes listed first.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a Renderer. An empty custom template selects the
// built-in markdown layout.
func NewRenderer(custom string) (*Renderer, error) {
	text := builtinTemplate
	if custom != "" {
		text = custom
	}
	tmpl, err := template.New("changelog").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse changelog template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// entry is one commit line in the rendered notes.
type entry struct {
	ShortSHA    string
	Scope       string
	Description string
	Reason      string // breaking change reason, set only in the breaking list
}

// section groups entries of one commit type under a heading.
type section struct {
	Title   string
	Entries []entry
}

// view is the template input.
type view struct {
	Package      string
	Version      string
	PriorVersion string
	Date         string
	Breaking     []entry
	Sections     []section
}

// Render produces the release notes for one candidate.
func (r *Renderer) Render(rc *domain.ReleaseCandidate, date time.Time) (string, error) {
	v := buildView(rc, date)
	var buf strings.Builder
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render changelog: %w", err)
	}
	return buf.String(), nil
}

// sectionOrder fixes the heading order; types not listed fall under the
// trailing catch-all.
var sectionOrder = []struct {
	Type  domain.CommitType
	Title string
}{
	{domain.TypeFeat, "Features"},
	{domain.TypeFix, "Bug Fixes"},
	{domain.TypePerf, "Performance"},
	{domain.TypeRefactor, "Refactoring"},
	{domain.TypeRevert, "Reverts"},
	{domain.TypeDocs, "Documentation"},
}

func buildView(rc *domain.ReleaseCandidate, date time.Time) view {
	v := view{
		Package: rc.Package.Name,
		Version: rc.NextVersion.String(),
	}
	if rc.PriorTag != nil {
		v.PriorVersion = rc.PriorTag.Version.String()
	}
	if !date.IsZero() {
		v.Date = date.Format("2006-01-02")
	}

	byType := make(map[domain.CommitType][]entry)
	for _, c := range rc.Commits {
		e := entry{
			ShortSHA:    c.ShortSHA(),
			Scope:       c.Scope,
			Description: c.Description,
		}
		byType[c.Type] = append(byType[c.Type], e)
		if c.Breaking {
			e.Reason = c.BreakingReason
			if e.Reason == "" {
				e.Reason = c.Description
			}
			v.Breaking = append(v.Breaking, e)
		}
	}

	listed := make(map[domain.CommitType]bool)
	for _, s := range sectionOrder {
		listed[s.Type] = true
		if entries := byType[s.Type]; len(entries) > 0 {
			v.Sections = append(v.Sections, section{Title: s.Title, Entries: entries})
		}
	}
	var rest []entry
	for _, c := range rc.Commits {
		if !listed[c.Type] {
			rest = append(rest, entry{ShortSHA: c.ShortSHA(), Scope: c.Scope, Description: c.Description})
		}
	}
	if len(rest) > 0 {
		v.Sections = append(v.Sections, section{Title: "Other Changes", Entries: rest})
	}
	return v
}

const builtinTemplate = `## {{.Version}}{{if .Date}} ({{.Date}}){{end}}
{{- if .Breaking}}

### Breaking Changes
{{range .Breaking}}
- {{if .Scope}}**{{.Scope}}:** {{end}}{{.Reason}} ({{.ShortSHA}})
{{- end}}
{{- end}}
{{- range .Sections}}

### {{.Title}}
{{range .Entries}}
- {{if .Scope}}**{{.Scope}}:** {{end}}{{.Description}} ({{.ShortSHA}})
{{- end}}
{{- end}}
`
