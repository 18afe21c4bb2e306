package rules

import (
	"context"

	"devopshq/artifactory-cleanup/pkg/artifactory"
)

// Rule is a single filtering step in a cleanup policy.
//
// Filter receives the current deletion candidates and returns the candidates
// that remain after this rule has been applied. Implementations must not
// mutate the input slice.
type Rule interface {
	// Name returns the registered name of the rule type, stable across
	// instances (e.g. "delete_older_than").
	Name() string

	// Filter applies the rule to the deletion candidates.
	Filter(ctx context.Context, items []artifactory.Item) ([]artifactory.Item, error)
}

// Definition describes a registrable rule type: its declared name and the
// factory that constructs instances from named parameters.
type Definition struct {
	// Name is the declarative name rule records reference.
	Name string

	// New constructs a rule instance from the record's parameters.
	// Parameter errors are returned as-is; the loader wraps them in a
	// ConstructionError.
	New func(params Params) (Rule, error)

	// TakesPolicyName marks the repository-selector rule type whose sole
	// parameter defaults to the owning policy's name when the rule record
	// carries no parameters. The loader defers instantiation of such
	// records; the policy constructor resolves them with its own name.
	TakesPolicyName bool
}

// RepositoryProvider is implemented by rules that name the repositories a
// policy operates on. The cleanup runner collects these before listing.
type RepositoryProvider interface {
	Repositories() []string
}

// RepositoryMatcher is implemented by rules that select repositories by
// pattern rather than by name.
type RepositoryMatcher interface {
	MatchRepository(repo string) bool
}
