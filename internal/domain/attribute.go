package domain

import (
	"sort"
	"strings"
)

// Match records that a commit touched files owned by a package. SubPackage is
// the sub-package name when the matched path belongs to a grouped sub-package;
// it is carried through to per-file manifest routing and plays no role in
// version calculation.
type Match struct {
	Package    string
	SubPackage string
}

// AttributionSet maps commit SHAs to the packages they attribute to.
// A single commit may attribute to several independent packages.
type AttributionSet map[string][]Match

// Packages returns the matches recorded for a commit sha.
func (s AttributionSet) Packages(sha string) []Match {
	return s[sha]
}

// Attributes reports whether the commit attributes to the named package,
// either directly or through one of its sub-packages.
func (s AttributionSet) Attributes(sha, pkg string) bool {
	for _, m := range s[sha] {
		if m.Package == pkg {
			return true
		}
	}
	return false
}

// ownedPath is a resolved path-prefix claim by a package.
// Fields are ordered to minimize memory padding.
type ownedPath struct {
	prefix     string
	pkg        string
	subPackage string
	nestable   bool // additional paths never lose to deeper package roots
}

// Attribute maps each classified commit to the set of configured packages it
// affects, by path-prefix comparison over normalized repository-relative
// paths. When package roots nest within one another, the longest matching
// prefix wins: a path under a nested package attributes only to that package,
// not to its ancestor.
func Attribute(commits []ClassifiedCommit, packages []PackageConfig) AttributionSet {
	var owned []ownedPath
	for i := range packages {
		pkg := &packages[i]
		owned = append(owned, ownedPath{prefix: pkg.FullPath(), pkg: pkg.Name})
		for _, sub := range pkg.SubPackages {
			owned = append(owned, ownedPath{
				prefix:     pkg.SubPackageFullPath(sub),
				pkg:        pkg.Name,
				subPackage: sub.Name,
			})
		}
		for _, extra := range pkg.AdditionalPaths {
			owned = append(owned, ownedPath{
				prefix:   NormalizePath(extra),
				pkg:      pkg.Name,
				nestable: true,
			})
		}
	}

	set := make(AttributionSet)
	for i := range commits {
		c := &commits[i]
		matches := make(map[Match]bool)
		for _, p := range c.Paths {
			for _, m := range resolveOwners(NormalizePath(p), owned) {
				matches[m] = true
			}
		}
		ordered := make([]Match, 0, len(matches))
		for m := range matches {
			ordered = append(ordered, m)
		}
		sort.Slice(ordered, func(a, b int) bool {
			if ordered[a].Package != ordered[b].Package {
				return ordered[a].Package < ordered[b].Package
			}
			return ordered[a].SubPackage < ordered[b].SubPackage
		})
		if len(ordered) > 0 {
			set[c.SHA] = ordered
		}
	}
	return set
}

// resolveOwners returns the owners of a single changed path. Package and
// sub-package roots compete by longest prefix; additional watched paths
// always claim their package regardless of nesting.
func resolveOwners(p string, owned []ownedPath) []Match {
	longest := -1
	for _, o := range owned {
		if o.nestable || !underPrefix(p, o.prefix) {
			continue
		}
		if len(o.prefix) > longest {
			longest = len(o.prefix)
		}
	}

	var matches []Match
	for _, o := range owned {
		if !underPrefix(p, o.prefix) {
			continue
		}
		if !o.nestable && len(o.prefix) != longest {
			continue
		}
		matches = append(matches, Match{Package: o.pkg, SubPackage: o.subPackage})
	}
	return matches
}

// underPrefix reports whether path p is equal to, or nested under, prefix.
// An empty prefix owns the repository root and matches every path.
func underPrefix(p, prefix string) bool {
	if prefix == "" {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
