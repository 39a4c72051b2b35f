package changelog

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/slipway-dev/slipway/internal/domain"
)

// Ensure Writer implements domain.ChangelogWriter.
var _ domain.ChangelogWriter = (*Writer)(nil)

// FileName is the changelog file maintained per package.
const FileName = "CHANGELOG.md"

// Writer prepends rendered release notes to a package's changelog file.
type Writer struct {
	repoRoot string
}

// NewWriter creates a new Writer rooted at the repository.
func NewWriter(repoRoot string) *Writer {
	return &Writer{repoRoot: repoRoot}
}

// Prepend inserts text at the top of the package changelog, creating the file
// when absent. Returns the repo-relative path written.
func (w *Writer) Prepend(pkgPath, text string) (string, error) {
	rel := path.Join(pkgPath, FileName)
	full := filepath.Join(w.repoRoot, filepath.FromSlash(rel))

	existing, err := os.ReadFile(full)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", rel, err)
	}

	content := []byte(text)
	if len(existing) > 0 {
		content = append(content, '\n')
		content = append(content, existing...)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(rel), err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	return rel, nil
}
