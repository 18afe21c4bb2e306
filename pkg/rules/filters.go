package rules

import (
	"context"

	"devopshq/artifactory-cleanup/pkg/artifactory"
)

// IncludePath narrows the candidates to items whose repository-relative
// path matches a wildcard mask.
type IncludePath struct {
	mask string
}

// Name implements Rule.
func (r *IncludePath) Name() string { return "include_path" }

// Filter implements Rule.
func (r *IncludePath) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	var out []artifactory.Item
	for _, item := range items {
		if matchMask(r.mask, item.Path) || matchMask(r.mask, item.FullPath()) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ExcludePath protects items whose repository-relative path matches a
// wildcard mask by dropping them from the candidates.
type ExcludePath struct {
	mask string
}

// Name implements Rule.
func (r *ExcludePath) Name() string { return "exclude_path" }

// Filter implements Rule.
func (r *ExcludePath) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	var out []artifactory.Item
	for _, item := range items {
		if matchMask(r.mask, item.Path) || matchMask(r.mask, item.FullPath()) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// PropertyEq narrows the candidates to items carrying a given property
// value.
type PropertyEq struct {
	property string
	value    string
}

// Name implements Rule.
func (r *PropertyEq) Name() string { return "property_eq" }

// Filter implements Rule.
func (r *PropertyEq) Filter(_ context.Context, items []artifactory.Item) ([]artifactory.Item, error) {
	var out []artifactory.Item
	for _, item := range items {
		if item.Properties[r.property] == r.value {
			out = append(out, item)
		}
	}
	return out, nil
}

func includePathDefinition() *Definition {
	return &Definition{
		Name: "include_path",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("mask"); err != nil {
				return nil, err
			}
			mask, err := p.String("mask")
			if err != nil {
				return nil, err
			}
			return &IncludePath{mask: mask}, nil
		},
	}
}

func excludePathDefinition() *Definition {
	return &Definition{
		Name: "exclude_path",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("mask"); err != nil {
				return nil, err
			}
			mask, err := p.String("mask")
			if err != nil {
				return nil, err
			}
			return &ExcludePath{mask: mask}, nil
		},
	}
}

func propertyEqDefinition() *Definition {
	return &Definition{
		Name: "property_eq",
		New: func(p Params) (Rule, error) {
			if err := p.CheckKeys("property", "value"); err != nil {
				return nil, err
			}
			property, err := p.String("property")
			if err != nil {
				return nil, err
			}
			value, err := p.String("value")
			if err != nil {
				return nil, err
			}
			return &PropertyEq{property: property, value: value}, nil
		},
	}
}
