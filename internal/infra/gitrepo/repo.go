// Package gitrepo provides a go-git backed history source and tagger.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/slipway-dev/slipway/internal/domain"
)

// Ensure Repo implements the history and tagging ports.
var (
	_ domain.CommitSource = (*Repo)(nil)
	_ domain.TagSource    = (*Repo)(nil)
	_ domain.Tagger       = (*Repo)(nil)
)

// Repo reads commit history and tags from a local git repository and creates
// release tags in it. All path output is slash-separated and repo-relative,
// matching what the attribution engine expects.
type Repo struct {
	repo *git.Repository
	root string
}

// Open opens the repository containing dir, searching parent directories for
// the .git directory. Returns domain.ErrNotGitRepository when none is found.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotGitRepository, dir)
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	root := dir
	if wt, wtErr := repo.Worktree(); wtErr == nil {
		root = wt.Filesystem.Root()
	}
	return &Repo{repo: repo, root: root}, nil
}

// NewWithRepo wraps an existing repository instance. This is useful for
// testing with in-memory repositories.
func NewWithRepo(repo *git.Repository) *Repo {
	return &Repo{repo: repo}
}

// Root returns the worktree root path.
func (r *Repo) Root() string {
	return r.root
}

// FetchCommits walks history from HEAD in committer-time order, newest first.
// The walk stops before the commit rng.SinceTag points at; without a tag it is
// bounded by rng.Depth (0 = unbounded).
func (r *Repo) FetchCommits(ctx context.Context, rng domain.CommitRange) ([]domain.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil // empty repository
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	defer iter.Close()

	var stopAt plumbing.Hash
	if rng.SinceTag != nil {
		stopAt = plumbing.NewHash(rng.SinceTag.SHA)
	}

	var commits []domain.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if rng.SinceTag != nil && c.Hash == stopAt {
			return storer.ErrStop
		}
		if rng.SinceTag == nil && rng.Depth > 0 && len(commits) >= rng.Depth {
			return storer.ErrStop
		}

		paths, err := changedPaths(ctx, c)
		if err != nil {
			return fmt.Errorf("diff commit %s: %w", c.Hash.String()[:7], err)
		}
		commits = append(commits, domain.Commit{
			SHA:         c.Hash.String(),
			Message:     c.Message,
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			Paths:       paths,
			Timestamp:   c.Committer.When,
			ParentCount: c.NumParents(),
		})
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}
	return commits, nil
}

// changedPaths returns the repo-relative files a commit touched, diffed
// against its first parent. A root commit reports its entire tree.
func changedPaths(ctx context.Context, c *object.Commit) ([]string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}

	if c.NumParents() == 0 {
		var paths []string
		err := tree.Files().ForEach(func(f *object.File) error {
			paths = append(paths, f.Name)
			return nil
		})
		return paths, err
	}

	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, ch := range changes {
		// A rename touches both the old and the new location.
		add(ch.From.Name)
		add(ch.To.Name)
	}
	sort.Strings(paths)
	return paths, nil
}

// FetchTags lists every tag with its target commit SHA and a timestamp: the
// tagger time for annotated tags, the target committer time otherwise.
func (r *Repo) FetchTags(ctx context.Context) ([]domain.Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer iter.Close()

	var tags []domain.Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := ref.Name().Short()
		sha := ref.Hash()
		var ts time.Time

		if tagObj, tagErr := r.repo.TagObject(ref.Hash()); tagErr == nil {
			// Annotated tag: peel to the target commit.
			ts = tagObj.Tagger.When
			sha = tagObj.Target
		} else if commit, commitErr := r.repo.CommitObject(ref.Hash()); commitErr == nil {
			ts = commit.Committer.When
		} else {
			return nil // tag points at a non-commit object
		}

		tags = append(tags, domain.Tag{
			Name:      name,
			SHA:       sha.String(),
			Timestamp: ts,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates an annotated tag at HEAD.
func (r *Repo) CreateTag(ctx context.Context, name, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}
	_, err = r.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  r.tagSignature(),
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("create tag %s: %w", name, err)
	}
	return nil
}

// tagSignature builds the tagger identity from git config, falling back to a
// fixed identity when none is set.
func (r *Repo) tagSignature() *object.Signature {
	sig := &object.Signature{Name: "slipway", Email: "slipway@localhost", When: time.Now()}
	cfg, err := r.repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
