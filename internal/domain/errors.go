package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrNotGitRepository = errors.New("not a git repository (or any of the parent directories)")
	ErrNoPackages       = errors.New("no packages configured")
	ErrPackageNotFound  = errors.New("package not found")
	ErrNoPriorRelease   = errors.New("no prior release found")
	ErrConfigExists     = errors.New("config file already exists")
	ErrNotInitialized   = errors.New("slipway not initialized (run 'slipway init' first)")
)

// ConfigError reports an invalid configuration for a package. It is fatal for
// the affected package before any planning proceeds, and is never silently
// defaulted.
type ConfigError struct {
	Package string // package name, empty for repository-level problems
	Reason  string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration for package %q: %s", e.Package, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// AmbiguousTagError reports an unresolved tie among candidate prior release
// tags for a package. It is fatal only for that package; sibling packages
// continue planning independently.
type AmbiguousTagError struct {
	Package string
	Tags    []string
}

func (e *AmbiguousTagError) Error() string {
	return fmt.Sprintf("ambiguous prior release tags for package %q: %s",
		e.Package, strings.Join(e.Tags, ", "))
}
