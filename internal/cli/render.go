package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/slipway-dev/slipway/internal/domain"
	"github.com/slipway-dev/slipway/internal/usecase"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	majorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	minorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	patchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	breakingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// planEntry is one releasable package in machine-readable plan output.
type planEntry struct {
	Package  string `json:"package" yaml:"package"`
	Current  string `json:"current,omitempty" yaml:"current,omitempty"`
	Next     string `json:"next" yaml:"next"`
	Bump     string `json:"bump" yaml:"bump"`
	Tag      string `json:"tag" yaml:"tag"`
	Commits  int    `json:"commits" yaml:"commits"`
	Breaking bool   `json:"breaking,omitempty" yaml:"breaking,omitempty"`
}

// planDoc is the machine-readable plan document.
type planDoc struct {
	Releases []planEntry `json:"releases" yaml:"releases"`
	Skipped  []string    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Failures []string    `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func buildPlanDoc(plan *domain.Plan) planDoc {
	doc := planDoc{Releases: []planEntry{}}
	for _, rc := range plan.Candidates {
		entry := planEntry{
			Package:  rc.Package.Name,
			Next:     rc.NextVersion.String(),
			Bump:     rc.Bump.String(),
			Tag:      rc.TagName,
			Commits:  len(rc.Commits),
			Breaking: rc.Breaking,
		}
		if rc.PriorTag != nil {
			entry.Current = rc.PriorTag.Version.String()
		}
		doc.Releases = append(doc.Releases, entry)
	}
	for _, s := range plan.Skipped {
		doc.Skipped = append(doc.Skipped, fmt.Sprintf("%s: %s", s.Name, s.Reason))
	}
	for _, f := range plan.Failures {
		doc.Failures = append(doc.Failures, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return doc
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(v)
}

func bumpStyle(b domain.Bump) lipgloss.Style {
	switch b {
	case domain.BumpMajor:
		return majorStyle
	case domain.BumpMinor:
		return minorStyle
	default:
		return patchStyle
	}
}

// renderPlanTable writes the human-readable plan.
func renderPlanTable(w io.Writer, plan *domain.Plan) error {
	if !plan.HasWork() && len(plan.Failures) == 0 {
		fmt.Fprintln(w, "Nothing to release.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("PACKAGE")+"\t"+
		headerStyle.Render("CURRENT")+"\t"+
		headerStyle.Render("NEXT")+"\t"+
		headerStyle.Render("BUMP")+"\t"+
		headerStyle.Render("COMMITS"))
	for _, rc := range plan.Candidates {
		current := "-"
		if rc.PriorTag != nil {
			current = rc.PriorTag.Version.String()
		}
		next := rc.NextVersion.String()
		if rc.Breaking {
			next += " " + breakingStyle.Render("!")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			rc.Package.Name, current, next, bumpStyle(rc.Bump).Render(rc.Bump.String()), len(rc.Commits))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, s := range plan.Skipped {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("skipped %s: %s", s.Name, s.Reason)))
	}
	for _, f := range plan.Failures {
		fmt.Fprintln(w, breakingStyle.Render(fmt.Sprintf("failed %s: %v", f.Name, f.Err)))
	}
	return nil
}

// renderApplied writes the result of applying a plan.
func renderApplied(w io.Writer, out *usecase.ApplyReleaseOutput, dryRun bool) {
	for _, a := range out.Applied {
		verb := "released"
		if dryRun {
			verb = "would release"
		}
		fmt.Fprintf(w, "%s %s %s (%s)\n", verb, a.Package, a.Version, a.Tag)
		for _, f := range a.ChangedFiles {
			fmt.Fprintln(w, dimStyle.Render("  updated "+f))
		}
		if a.ChangelogPath != "" {
			fmt.Fprintln(w, dimStyle.Render("  changelog "+a.ChangelogPath))
		}
		if a.Published {
			fmt.Fprintln(w, dimStyle.Render("  published "+a.Tag))
		}
	}
	for _, f := range out.Failures {
		fmt.Fprintln(w, breakingStyle.Render(fmt.Sprintf("failed %s: %v", f.Name, f.Err)))
	}
}
