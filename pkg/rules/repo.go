package rules

import (
	"context"

	"devopshq/artifactory-cleanup/pkg/artifactory"
)

// RepoName is the registered name of the repository-selector rule.
const RepoName = "repo"

// Repo selects the single repository a policy operates on. It is the
// distinguished rule type whose argument defaults to the owning policy's
// name when the rule record carries no parameters.
type Repo struct {
	repo string
}

// NewRepo creates a repository-selector rule for the given repository key.
func NewRepo(repo string) *Repo {
	return &Repo{repo: repo}
}

// Name implements Rule.
func (r *Repo) Name() string { return RepoName }

// Repositories implements RepositoryProvider.
func (r *Repo) Repositories() []string { return []string{r.repo} }

// Filter implements Rule. Repository selection happens before listing, so
// the candidate set passes through unchanged.
func (r *Repo) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	return items, nil
}

// RepoByMask selects every repository whose key matches a wildcard mask,
// e.g. "*.tmp" or "docker-*-local".
type RepoByMask struct {
	mask string
}

// Name implements Rule.
func (r *RepoByMask) Name() string { return "repo_by_mask" }

// MatchRepository implements RepositoryMatcher.
func (r *RepoByMask) MatchRepository(repo string) bool {
	return matchMask(r.mask, repo)
}

// Filter implements Rule.
func (r *RepoByMask) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	return items, nil
}

func repoDefinition() *Definition {
	return &Definition{
		Name:            RepoName,
		TakesPolicyName: true,
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("name"); err != nil {
				return nil, err
			}
			name, err := p.String("name")
			if err != nil {
				return nil, err
			}
			return NewRepo(name), nil
		},
	}
}

func repoByMaskDefinition() *Definition {
	return &Definition{
		Name: "repo_by_mask",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("mask"); err != nil {
				return nil, err
			}
			mask, err := p.String("mask")
			if err != nil {
				return nil, err
			}
			return &RepoByMask{mask: mask}, nil
		},
	}
}
