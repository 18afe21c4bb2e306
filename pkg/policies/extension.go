package policies

import (
	"fmt"
	"log/slog"
	"os"
	"plugin"
)

// RulesSymbol is the exported symbol an extension plugin must provide:
// a package-level variable holding the pre-built policy list.
const RulesSymbol = "RULES"

// symbolLookup resolves exported symbols of a loaded extension.
type symbolLookup func(name string) (any, error)

// Seams for the process-terminating paths. Production code always goes
// through plugin.Open and os.Exit; tests substitute both.
var (
	openExtension = func(path string) (symbolLookup, error) {
		p, err := plugin.Open(path)
		if err != nil {
			return nil, err
		}
		return func(name string) (any, error) {
			sym, err := p.Lookup(name)
			return any(sym), err
		}, nil
	}

	exitProcess = os.Exit
)

// ExtensionLoader loads a policy list from a compiled Go plugin
// (built with -buildmode=plugin) that exports RULES, a []*Policy built
// programmatically by the extension's own code. The rule registry is
// bypassed entirely.
//
// The extension loader is always the top-level entry point for its
// definition kind and has no caller-visible partial-success state, so any
// failure terminates the process with a diagnostic instead of returning an
// error: there is no meaningful fallback once the sole definition source
// cannot load.
type ExtensionLoader struct {
	logger *slog.Logger
}

// NewExtensionLoader creates an extension plugin loader.
func NewExtensionLoader() *ExtensionLoader {
	return &ExtensionLoader{
		logger: slog.Default().With("component", "policies.extension"),
	}
}

// GetPolicies loads the plugin at path and returns the policies its RULES
// symbol holds, in the order the extension built them. It never returns an
// error: failure exits the process with a non-zero status.
func (l *ExtensionLoader) GetPolicies(path string) ([]*Policy, error) {
	lookup, err := openExtension(path)
	if err != nil {
		l.fatalf("failed to load extension", "path", path, "error", err)
	}

	sym, err := lookup(RulesSymbol)
	if err != nil {
		l.fatalf("extension does not export RULES", "path", path, "error", err)
	}

	policies, ok := l.extractPolicies(path, sym)
	if !ok {
		l.fatalf("extension RULES has unsupported type", "path", path, "type", fmt.Sprintf("%T", sym))
	}

	return policies, nil
}

// extractPolicies converts the RULES symbol into a policy list. Plugin
// symbol lookup yields a pointer to the exported variable, so both the
// pointer and value forms are accepted; an untyped []any list is validated
// element by element.
func (l *ExtensionLoader) extractPolicies(path string, sym any) ([]*Policy, bool) {
	switch v := sym.(type) {
	case *[]*Policy:
		return l.validated(path, asAnySlice(*v)), true
	case []*Policy:
		return l.validated(path, asAnySlice(v)), true
	case *[]any:
		return l.validated(path, *v), true
	case []any:
		return l.validated(path, v), true
	default:
		return nil, false
	}
}

// validated asserts that every element is a *Policy, terminating with a
// diagnostic naming the offending element otherwise.
func (l *ExtensionLoader) validated(path string, elements []any) []*Policy {
	policies := make([]*Policy, 0, len(elements))
	for i, element := range elements {
		policy, ok := element.(*Policy)
		if !ok || policy == nil {
			l.fatalf("extension RULES element is not a policy",
				"path", path,
				"index", i,
				"element", element,
			)
		}
		policies = append(policies, policy)
	}
	return policies
}

// fatalf logs a user-facing diagnostic and terminates the process.
func (l *ExtensionLoader) fatalf(msg string, args ...any) {
	l.logger.Error(msg, args...)
	exitProcess(1)
}

func asAnySlice(policies []*Policy) []any {
	out := make([]any, len(policies))
	for i, p := range policies {
		out[i] = p
	}
	return out
}
