package policies

import (
	"fmt"

	"devopshq/artifactory-cleanup/pkg/rules"
)

// Policy is an ordered, named bundle of rule instances. It is constructed
// once by a loader (or programmatically by an extension file) and immutable
// afterwards; the cleanup runner only reads it.
type Policy struct {
	name  string
	rules []rules.Rule
}

// Member is one entry in a policy's ordered rule list: either an already
// instantiated rule or a deferred repository-selector type that the Policy
// constructor resolves with the policy's own name.
type Member interface {
	materialize(policyName string) (rules.Rule, error)
}

type ruleMember struct {
	rule rules.Rule
}

func (m ruleMember) materialize(string) (rules.Rule, error) {
	return m.rule, nil
}

type typeMember struct {
	def *rules.Definition
}

func (m typeMember) materialize(policyName string) (rules.Rule, error) {
	rule, err := m.def.New(rules.Params{"name": policyName})
	if err != nil {
		return nil, &rules.ConstructionError{RuleName: m.def.Name, Cause: err}
	}
	return rule, nil
}

// FromRule wraps an instantiated rule as a policy member.
func FromRule(r rules.Rule) Member {
	return ruleMember{rule: r}
}

// FromType wraps a deferred rule type as a policy member. The Policy
// constructor instantiates it with the policy's name as its sole parameter.
func FromType(def *rules.Definition) Member {
	return typeMember{def: def}
}

// New constructs a policy from its name and ordered members, resolving any
// deferred rule types. After New returns, every element of Rules() is an
// instantiated rule.
func New(name string, members ...Member) (*Policy, error) {
	if name == "" {
		return nil, fmt.Errorf("policy name cannot be empty")
	}

	resolved := make([]rules.Rule, 0, len(members))
	for i, member := range members {
		rule, err := member.materialize(name)
		if err != nil {
			return nil, fmt.Errorf("policy %q rule %d: %w", name, i, err)
		}
		if rule == nil {
			return nil, fmt.Errorf("policy %q rule %d: nil rule", name, i)
		}
		resolved = append(resolved, rule)
	}

	return &Policy{name: name, rules: resolved}, nil
}

// MustNew is New for programmatic policy construction in extension files,
// where a broken policy should fail loudly at plugin initialization.
func MustNew(name string, members ...Member) *Policy {
	p, err := New(name, members...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the policy name.
func (p *Policy) Name() string { return p.name }

// Rules returns the policy's rules in declaration order.
// The returned slice is a copy.
func (p *Policy) Rules() []rules.Rule {
	out := make([]rules.Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// String implements fmt.Stringer for diagnostics.
func (p *Policy) String() string {
	return fmt.Sprintf("policy %q (%d rules)", p.name, len(p.rules))
}
