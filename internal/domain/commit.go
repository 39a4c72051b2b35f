package domain

import (
	"regexp"
	"strings"
	"time"
)

// Commit is a raw commit record supplied by a commit source. It is an
// immutable fact; classification never mutates it.
// Fields are ordered to minimize memory padding.
type Commit struct {
	SHA         string
	Message     string // full raw message (header + body)
	AuthorName  string
	AuthorEmail string
	Paths       []string // repository-relative changed file paths
	Timestamp   time.Time
	ParentCount int
}

// ShortSHA returns the abbreviated commit hash.
func (c Commit) ShortSHA() string {
	if len(c.SHA) <= 7 {
		return c.SHA
	}
	return c.SHA[:7]
}

// CommitType is the conventional-commit type of a classified commit.
type CommitType string

// Recognized conventional commit types. Anything else classifies as misc.
const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeChore    CommitType = "chore"
	TypeCI       CommitType = "ci"
	TypeDocs     CommitType = "docs"
	TypeRefactor CommitType = "refactor"
	TypePerf     CommitType = "perf"
	TypeTest     CommitType = "test"
	TypeBuild    CommitType = "build"
	TypeRevert   CommitType = "revert"
	TypeMisc     CommitType = "misc"
)

var knownTypes = map[string]CommitType{
	"feat":     TypeFeat,
	"fix":      TypeFix,
	"chore":    TypeChore,
	"ci":       TypeCI,
	"docs":     TypeDocs,
	"refactor": TypeRefactor,
	"perf":     TypePerf,
	"test":     TypeTest,
	"build":    TypeBuild,
	"revert":   TypeRevert,
}

// ClassifiedCommit is a Commit with parsed conventional-commit fields.
// It is a pure derivation of the raw commit plus overrides.
// Fields are ordered to minimize memory padding.
type ClassifiedCommit struct {
	Commit
	Type           CommitType
	Scope          string
	Description    string
	Body           string
	BreakingReason string
	// EffectiveMessage is the text classification ran on: the reword
	// replacement when one matched, the raw message otherwise. Rules that
	// inspect message text must use it, never Commit.Message.
	EffectiveMessage string
	Breaking         bool
	Merge            bool
	Unconventional   bool
}

// Overrides carries per-run commit adjustments from configuration.
// Skip entries are sha prefixes (at least 7 characters) whose commits are
// dropped entirely. Reword maps sha prefixes to replacement message text.
type Overrides struct {
	Skip   []string
	Reword map[string]string
}

// minOverridePrefix is the shortest sha prefix accepted for skip/reword
// matching; shorter entries are ignored to avoid accidental mass matches.
const minOverridePrefix = 7

var headerPattern = regexp.MustCompile(`^(\w+)(\(([^)]*)\))?(!)?:\s*(.+)$`)

// Classify parses a raw commit into a ClassifiedCommit, applying skip and
// reword overrides. The second return value is false when the commit is
// skip-listed and must be excluded from all downstream processing.
//
// Classify never fails: an unrecognized header shape yields a misc,
// non-breaking classification.
func Classify(c Commit, ov Overrides) (ClassifiedCommit, bool) {
	for _, prefix := range ov.Skip {
		if len(prefix) >= minOverridePrefix && strings.HasPrefix(c.SHA, prefix) {
			return ClassifiedCommit{}, false
		}
	}

	// Longest matching prefix wins so the result never depends on map
	// iteration order.
	message := c.Message
	matched := ""
	for prefix, replacement := range ov.Reword {
		if len(prefix) >= minOverridePrefix && strings.HasPrefix(c.SHA, prefix) && len(prefix) > len(matched) {
			matched = prefix
			message = replacement
		}
	}

	cc := ClassifiedCommit{
		Commit:           c,
		EffectiveMessage: message,
		Merge:            c.ParentCount > 1,
	}

	header, body, _ := strings.Cut(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	header = strings.TrimSpace(header)
	cc.Body = strings.TrimSpace(body)

	if m := headerPattern.FindStringSubmatch(header); m != nil {
		if t, ok := knownTypes[strings.ToLower(m[1])]; ok {
			cc.Type = t
		} else {
			cc.Type = TypeMisc
			cc.Unconventional = true
		}
		cc.Scope = m[3]
		cc.Description = strings.TrimSpace(m[5])
		if m[4] == "!" {
			cc.Breaking = true
		}
	} else {
		cc.Type = TypeMisc
		cc.Description = header
		cc.Unconventional = true
	}

	if reason, ok := breakingFooter(cc.Body); ok {
		cc.Breaking = true
		cc.BreakingReason = reason
		if cc.BreakingReason == "" {
			cc.BreakingReason = cc.Body
		}
	}
	return cc, true
}

// breakingFooter scans the body for a BREAKING CHANGE footer and returns its
// value. The footer value is the remainder of the footer line plus any
// directly following indented or plain continuation lines.
func breakingFooter(body string) (string, bool) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		var rest string
		switch {
		case strings.HasPrefix(trimmed, "BREAKING CHANGE:"):
			rest = strings.TrimPrefix(trimmed, "BREAKING CHANGE:")
		case strings.HasPrefix(trimmed, "BREAKING-CHANGE:"):
			rest = strings.TrimPrefix(trimmed, "BREAKING-CHANGE:")
		default:
			continue
		}
		parts := []string{strings.TrimSpace(rest)}
		for _, cont := range lines[i+1:] {
			cont = strings.TrimSpace(cont)
			if cont == "" {
				break
			}
			parts = append(parts, cont)
		}
		value := strings.TrimSpace(strings.Join(parts, " "))
		return value, true
	}
	return "", false
}
