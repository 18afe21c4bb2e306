package policies

import (
	"errors"
	"testing"

	"devopshq/artifactory-cleanup/pkg/rules"
)

var errTest = errors.New("test error")

func builtinRegistry(t *testing.T) *rules.Registry {
	t.Helper()

	registry := rules.NewRegistry()
	registry.RegisterBuiltins()
	return registry
}

func mustDefinition(t *testing.T, registry *rules.Registry, name string) *rules.Definition {
	t.Helper()

	def, err := registry.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) error = %v, want nil", name, err)
	}
	return def
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Fatal("New(\"\") error = nil, want error")
	}
}

func TestNew_PreservesRuleOrder(t *testing.T) {
	registry := builtinRegistry(t)

	older, err := mustDefinition(t, registry, "delete_older_than").New(rules.Params{"days": 30})
	if err != nil {
		t.Fatalf("New(delete_older_than) error = %v, want nil", err)
	}
	unused, err := mustDefinition(t, registry, "delete_without_downloads").New(rules.Params{})
	if err != nil {
		t.Fatalf("New(delete_without_downloads) error = %v, want nil", err)
	}

	policy, err := New("ordered", FromRule(older), FromRule(unused))
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}

	got := policy.Rules()
	if len(got) != 2 {
		t.Fatalf("len(Rules()) = %d, want 2", len(got))
	}
	if got[0].Name() != "delete_older_than" || got[1].Name() != "delete_without_downloads" {
		t.Errorf("rule order = [%s, %s], want [delete_older_than, delete_without_downloads]",
			got[0].Name(), got[1].Name())
	}
}

func TestNew_ResolvesDeferredSelector(t *testing.T) {
	registry := builtinRegistry(t)
	repoDef := mustDefinition(t, registry, rules.RepoName)

	policy, err := New("libs-release-local", FromType(repoDef))
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}

	got := policy.Rules()
	if len(got) != 1 {
		t.Fatalf("len(Rules()) = %d, want 1", len(got))
	}

	// The deferred selector must come out as a fully instantiated rule
	// parameterized with the policy's own name.
	provider, ok := got[0].(rules.RepositoryProvider)
	if !ok {
		t.Fatalf("rule type = %T, want rules.RepositoryProvider", got[0])
	}
	repos := provider.Repositories()
	if len(repos) != 1 || repos[0] != "libs-release-local" {
		t.Errorf("Repositories() = %v, want [libs-release-local]", repos)
	}
}

func TestNew_DeferredSelectorFailure(t *testing.T) {
	failing := &rules.Definition{
		Name:            "repo",
		TakesPolicyName: true,
		New: func(rules.Params) (rules.Rule, error) {
			return nil, errTest
		},
	}

	if _, err := New("broken", FromType(failing)); err == nil {
		t.Fatal("New() error = nil, want error")
	}
}

func TestMustNew_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(\"\") did not panic")
		}
	}()
	MustNew("")
}

func TestPolicy_RulesIsACopy(t *testing.T) {
	registry := builtinRegistry(t)
	rule, err := mustDefinition(t, registry, "delete_without_downloads").New(rules.Params{})
	if err != nil {
		t.Fatalf("New(delete_without_downloads) error = %v, want nil", err)
	}

	policy, err := New("copy", FromRule(rule))
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}

	policy.Rules()[0] = nil
	if policy.Rules()[0] == nil {
		t.Error("mutating Rules() result affected the policy")
	}
}
