package domain

import (
	"strings"
	"time"
)

// Tag is a release tag supplied by a tag source, with its version parsed
// against a package's tag prefix.
// Fields are ordered to minimize memory padding.
type Tag struct {
	Name      string
	SHA       string
	Version   Version
	Timestamp time.Time
}

// ParseTag attempts to parse a tag name as {prefix}{semver} for the given
// package. It returns false when the name does not carry the prefix or the
// remainder is not a valid semantic version.
func ParseTag(name, sha string, ts time.Time, prefix string) (Tag, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return Tag{}, false
	}
	v, err := ParseVersion(rest)
	if err != nil {
		return Tag{}, false
	}
	return Tag{Name: name, SHA: sha, Version: v, Timestamp: ts}, true
}

// LocatePriorTag finds the prior release tag for a package among all
// repository tags: the matching tag with the greatest parsed version,
// breaking version ties by latest commit timestamp. An unresolvable tie is
// an AmbiguousTagError; no prior release returns nil.
func LocatePriorTag(pkg *PackageConfig, tags []Tag) (*Tag, error) {
	var best *Tag
	var tied []string
	for i := range tags {
		t, ok := ParseTag(tags[i].Name, tags[i].SHA, tags[i].Timestamp, pkg.TagPrefix)
		if !ok {
			continue
		}
		if best == nil {
			picked := t
			best = &picked
			continue
		}
		switch t.Version.Compare(best.Version) {
		case 1:
			picked := t
			best = &picked
			tied = nil
		case 0:
			switch {
			case t.Timestamp.After(best.Timestamp):
				picked := t
				best = &picked
				tied = nil
			case t.Timestamp.Equal(best.Timestamp):
				tied = append(tied, t.Name)
			}
		}
	}
	if len(tied) > 0 {
		return nil, &AmbiguousTagError{Package: pkg.Name, Tags: append([]string{best.Name}, tied...)}
	}
	return best, nil
}

// CommitRange describes what history to request from a commit source.
// When SinceTag is set the request is all commits reachable from HEAD down
// to, but excluding, the tag's commit. Otherwise the request is bounded by
// Depth (0 meaning unbounded) for a first release.
type CommitRange struct {
	SinceTag *Tag
	Depth    int
}

// Window determines the history request for a package given its prior tag
// (which may be nil) and the configured first-release search depth.
func Window(prior *Tag, firstReleaseSearchDepth int) CommitRange {
	if prior != nil {
		return CommitRange{SinceTag: prior}
	}
	return CommitRange{Depth: firstReleaseSearchDepth}
}
