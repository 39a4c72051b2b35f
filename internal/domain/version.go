package domain

import "slices"

// Bump is the increment level decided from a commit set.
type Bump int

// Bump levels, ordered so that a rule can escalate but never downgrade.
const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

// String returns the lowercase bump name.
func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "none"
	}
}

// DecideBump evaluates the increment rules over an attributed commit set and
// returns the resulting bump level together with the commits that qualified.
// BumpNone means no qualifying commits remain and the package is not
// releasable.
func DecideBump(commits []ClassifiedCommit, rules IncrementRules) (Bump, []ClassifiedCommit) {
	bump := BumpNone
	var qualifying []ClassifiedCommit
	for _, c := range commits {
		if c.Merge && !rules.IncludeMergeCommits {
			continue
		}
		if slices.Contains(rules.ExcludeTypes, c.Type) {
			continue
		}
		qualifying = append(qualifying, c)
		bump = max(bump, commitBump(c, rules))
	}
	return bump, qualifying
}

// commitBump returns the bump level a single qualifying commit demands.
func commitBump(c ClassifiedCommit, rules IncrementRules) Bump {
	bump := BumpPatch
	if c.Breaking && rules.BreakingIncrementsMajor {
		bump = BumpMajor
	}
	if c.Type == TypeFeat && rules.FeaturesIncrementMinor {
		bump = max(bump, BumpMinor)
	}
	if rules.MajorPattern != nil && rules.MajorPattern.MatchString(c.EffectiveMessage) {
		bump = BumpMajor
	}
	if rules.MinorPattern != nil && rules.MinorPattern.MatchString(c.EffectiveMessage) {
		bump = max(bump, BumpMinor)
	}
	return bump
}

// applyBump increments a stable base version by one bump level.
func applyBump(v Version, b Bump) Version {
	switch b {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// foldBump recomputes the base relative to a pending (prerelease) version.
// The pending base was never released, so a change folds into it unless it
// demands a higher level than the pending base already represents: a patch
// always folds; a minor folds when the pending patch is zero; a major folds
// only when the pending base is an X.0.0.
func foldBump(pending Version, b Bump) Version {
	switch b {
	case BumpMajor:
		if pending.Minor == 0 && pending.Patch == 0 {
			return pending
		}
		return applyBump(pending, BumpMajor)
	case BumpMinor:
		if pending.Patch == 0 {
			return pending
		}
		return applyBump(pending, BumpMinor)
	default:
		return pending
	}
}

// ComputeNext calculates the next version for a package from its prior tag
// (nil for a first release), the decided bump level, and the effective
// prerelease configuration. It is a pure function: identical inputs always
// yield the identical version.
//
// Prerelease handling:
//   - no config, prior stable: plain bump of the prior version
//   - no config, prior prerelease: graduation, releasing the recomputed
//     stable base with the suffix dropped
//   - config matches the prior suffix and the recomputed base equals the
//     pending base: continuation, where versioned increments the counter
//     and static keeps the suffix as is
//   - otherwise: switching, a fresh bump of the numeric base with the
//     counter reset to 1 (versioned) or omitted (static)
func ComputeNext(pkg *PackageConfig, prior *Tag, bump Bump, pre *PrereleaseConfig) Version {
	if prior == nil {
		base := applyBump(Version{}, bump)
		if pkg.InitialVersion != "" {
			// Validated at config load time.
			if v, err := ParseVersion(pkg.InitialVersion); err == nil {
				base = v.Base()
			}
		}
		return withPrerelease(base, pre, 1)
	}

	priorVersion := prior.Version
	pending := priorVersion.Base()

	if pre == nil {
		if priorVersion.IsPrerelease() {
			return foldBump(pending, bump) // graduation
		}
		return applyBump(priorVersion, bump)
	}

	continuing := priorVersion.IsPrerelease() &&
		priorVersion.Prerelease == pre.Suffix &&
		foldBump(pending, bump).Equal(pending)
	if continuing {
		if pre.Strategy == StrategyStatic {
			return Version{Major: pending.Major, Minor: pending.Minor, Patch: pending.Patch, Prerelease: pre.Suffix}
		}
		// Counter starts at 1 when the prior tag carried none.
		counter := priorVersion.PrereleaseCounter + 1
		return Version{Major: pending.Major, Minor: pending.Minor, Patch: pending.Patch, Prerelease: pre.Suffix, PrereleaseCounter: counter}
	}

	// Switching (or first prerelease after a stable run): fresh bump of the
	// numeric base, prerelease suffix of the prior tag ignored.
	return withPrerelease(applyBump(pending, bump), pre, 1)
}

// withPrerelease attaches the configured prerelease identifier to a stable
// base, or returns the base unchanged when no config is present.
func withPrerelease(base Version, pre *PrereleaseConfig, counter int) Version {
	if pre == nil {
		return base
	}
	v := base
	v.Prerelease = pre.Suffix
	if pre.Strategy != StrategyStatic {
		v.PrereleaseCounter = counter
	}
	return v
}
