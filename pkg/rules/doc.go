// Package rules provides the rule model for cleanup policies: the Rule
// capability contract, the registry that resolves declarative rule names to
// rule types, and the built-in rule set shipped with the tool.
//
// # Rule Model
//
// A Rule filters the set of deletion candidates for a policy. Execution
// starts from every item in the policy's repositories; each rule narrows or
// prunes that set in declaration order, and whatever survives the full rule
// chain is removed. "delete_*" rules select artifacts for deletion,
// "keep_*"/"include_*"/"exclude_*" rules protect artifacts by dropping them
// from the candidate set.
//
// # Registry
//
// Rule types are registered under stable string names and resolved by the
// definition loaders. Registration is explicit: NewRegistry returns an empty
// registry, RegisterBuiltins populates it with the shipped rule set, and
// DefaultRegistry returns a process-wide registry that is populated exactly
// once. Register replaces an existing entry under the same name, so user
// code can override built-ins; RegisterDefault keeps the existing entry and
// logs a warning instead, which is the behavior used during built-in
// registration where a name collision indicates a packaging inconsistency.
//
// # Custom Rules
//
//	registry := rules.DefaultRegistry()
//	registry.Register(&rules.Definition{
//	    Name: "delete_snapshots",
//	    New: func(p rules.Params) (rules.Rule, error) {
//	        ...
//	    },
//	})
package rules
