package policies

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"devopshq/artifactory-cleanup/pkg/rules"
)

// Loader converts an external definition source into a validated policy
// list. Two implementations exist: YAMLLoader for structured definition
// files and ExtensionLoader for compiled extension plugins.
type Loader interface {
	GetPolicies(path string) ([]*Policy, error)
}

// ForFile selects the loader variant for a definition file by its
// extension: ".yaml"/".yml" files go through the structured loader,
// ".so" files through the extension loader.
func ForFile(path string, registry *rules.Registry) Loader {
	if strings.EqualFold(filepath.Ext(path), ".so") {
		return NewExtensionLoader()
	}
	return NewYAMLLoader(registry)
}

// YAMLLoader loads policies from a structured YAML definition file,
// resolving every rule record through a rule registry.
type YAMLLoader struct {
	registry *rules.Registry
}

// NewYAMLLoader creates a structured definition loader that resolves rule
// names against registry. A nil registry falls back to the process-wide
// default registry.
func NewYAMLLoader(registry *rules.Registry) *YAMLLoader {
	if registry == nil {
		registry = rules.DefaultRegistry()
	}
	return &YAMLLoader{registry: registry}
}

// definitionDocument mirrors the definition file layout:
//
//	artifactory-cleanup:
//	  policies:
//	    - name: <policy-name>
//	      rules:
//	        - rule: <registered-rule-name>
//	          <param>: <value>
type definitionDocument struct {
	ArtifactoryCleanup *struct {
		Policies []policyRecord `yaml:"policies"`
	} `yaml:"artifactory-cleanup"`
}

type policyRecord struct {
	Name  string           `yaml:"name"`
	Rules []map[string]any `yaml:"rules"`
}

// GetPolicies parses the definition file at path and returns its policies
// in document order, each with rules in record order.
//
// Failure modes: *LoadError when the file is absent or unreadable,
// *ParseError when the document is structurally invalid,
// *rules.UnknownRuleError when a rule record references an unregistered
// name, and *rules.ConstructionError when a resolved rule type rejects its
// parameters.
func (l *YAMLLoader) GetPolicies(path string) ([]*Policy, error) {
	doc, err := l.readDocument(path)
	if err != nil {
		return nil, err
	}

	policies := make([]*Policy, 0, len(doc.ArtifactoryCleanup.Policies))
	for _, record := range doc.ArtifactoryCleanup.Policies {
		if record.Name == "" {
			return nil, &ParseError{
				FilePath: path,
				Message:  "policy record without a name",
			}
		}

		members := make([]Member, 0, len(record.Rules))
		for _, ruleRecord := range record.Rules {
			member, err := l.buildMember(path, record.Name, ruleRecord)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}

		policy, err := New(record.Name, members...)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}

	return policies, nil
}

// readDocument reads and parses the definition file, distinguishing file
// system failures from structural ones.
func (l *YAMLLoader) readDocument(path string) (*definitionDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{FilePath: path, Message: "file not found", Cause: err}
		}
		if os.IsPermission(err) {
			return nil, &LoadError{FilePath: path, Message: "permission denied", Cause: err}
		}
		return nil, &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}

	var doc definitionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{FilePath: path, Message: "YAML parsing failed", Cause: err}
	}
	if doc.ArtifactoryCleanup == nil {
		return nil, &ParseError{FilePath: path, Message: `missing "artifactory-cleanup" section`}
	}

	return &doc, nil
}

// buildMember turns a single rule record into a policy member. The "rule"
// key names the registered rule type; the remaining keys are its
// constructor parameters.
func (l *YAMLLoader) buildMember(path, policyName string, record map[string]any) (Member, error) {
	raw, ok := record["rule"]
	if !ok {
		return nil, &ParseError{
			FilePath: path,
			Policy:   policyName,
			Message:  `rule record without a "rule" key`,
		}
	}
	ruleName, ok := raw.(string)
	if !ok {
		return nil, &ParseError{
			FilePath: path,
			Policy:   policyName,
			Message:  `"rule" key must be a string`,
		}
	}

	params := make(rules.Params, len(record)-1)
	for key, value := range record {
		if key != "rule" {
			params[key] = value
		}
	}

	def, err := l.registry.Get(ruleName)
	if err != nil {
		return nil, err
	}

	// The repository-selector's argument is, by convention, the owning
	// policy's name. A bare record defers instantiation to the Policy
	// constructor, which knows that name.
	if def.TakesPolicyName && len(params) == 0 {
		return FromType(def), nil
	}

	rule, err := def.New(params)
	if err != nil {
		return nil, &rules.ConstructionError{RuleName: ruleName, Cause: err}
	}
	return FromRule(rule), nil
}
