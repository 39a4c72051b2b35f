// Package manifest patches version strings in package manifest files.
package manifest

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/slipway-dev/slipway/internal/domain"
)

// Ensure Updater implements domain.ManifestUpdater.
var _ domain.ManifestUpdater = (*Updater)(nil)

// DefaultRule is applied when a package configures no version files. The
// VERSION file is only patched when it exists.
var DefaultRule = domain.VersionFileRule{
	Path:    "VERSION",
	Pattern: `(?P<version>\d+\.\d+\.\d+[0-9A-Za-z.+-]*)`,
}

// Updater rewrites version occurrences in files by splicing the matched
// (?P<version>...) span, leaving the rest of the file byte-identical.
type Updater struct {
	repoRoot string
}

// NewUpdater creates a new Updater rooted at the repository.
func NewUpdater(repoRoot string) *Updater {
	return &Updater{repoRoot: repoRoot}
}

// Apply patches the version files for one release unit and returns the
// repo-relative paths of the files it changed.
func (u *Updater) Apply(update domain.ManifestUpdate) ([]string, error) {
	rules := update.Rules
	defaulted := false
	if len(rules) == 0 {
		rules = []domain.VersionFileRule{DefaultRule}
		defaulted = true
	}

	var changed []string
	for _, rule := range rules {
		rel := path.Join(update.Path, rule.Path)
		full := filepath.Join(u.repoRoot, filepath.FromSlash(rel))

		data, err := os.ReadFile(full)
		if err != nil {
			if defaulted && os.IsNotExist(err) {
				continue
			}
			return changed, fmt.Errorf("read %s: %w", rel, err)
		}

		patched, err := patch(data, rule.Pattern, update.NewVersion)
		if err != nil {
			return changed, &domain.ConfigError{Package: update.Package, Reason: fmt.Sprintf("version file %s: %v", rel, err)}
		}
		if patched == nil {
			if defaulted {
				continue
			}
			return changed, fmt.Errorf("version file %s: pattern %q matched nothing", rel, rule.Pattern)
		}

		info, err := os.Stat(full)
		if err != nil {
			return changed, fmt.Errorf("stat %s: %w", rel, err)
		}
		if err := os.WriteFile(full, patched, info.Mode().Perm()); err != nil {
			return changed, fmt.Errorf("write %s: %w", rel, err)
		}
		changed = append(changed, rel)
	}
	return changed, nil
}

// patch replaces every (?P<version>...) capture in data with newVersion.
// Returns nil when the pattern matched nothing.
func patch(data []byte, pattern, newVersion string) ([]byte, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	group := re.SubexpIndex("version")
	if group < 0 {
		return nil, fmt.Errorf("pattern must contain a (?P<version>...) group")
	}

	matches := re.FindAllSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	// Splice back to front so earlier spans stay valid.
	out := append([]byte(nil), data...)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		start, end := m[2*group], m[2*group+1]
		if start < 0 {
			continue
		}
		out = append(out[:start], append([]byte(newVersion), out[end:]...)...)
	}
	return out, nil
}
