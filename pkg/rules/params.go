package rules

import (
	"fmt"
	"time"
)

// Params holds the named constructor parameters of a rule record, taken
// verbatim from the definition file (everything except the "rule" key).
type Params map[string]any

// CheckKeys verifies that every key present in p is one of allowed.
// Rule factories call this first so that a typo in a rule record surfaces
// as a construction error instead of being silently ignored.
func (p Params) CheckKeys(allowed ...string) error {
	for key := range p {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown parameter %q", key)
		}
	}
	return nil
}

// String returns the string parameter under key.
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// Int returns the integer parameter under key. YAML decodes integers as int
// and sometimes as float64 when they pass through generic maps; both are
// accepted as long as the value is integral.
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("parameter %q must be an integer, got %v", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %q must be an integer, got %T", key, v)
	}
}

// PositiveInt returns the integer parameter under key, requiring it to be
// greater than zero.
func (p Params) PositiveInt(key string) (int, error) {
	n, err := p.Int(key)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("parameter %q must be positive, got %d", key, n)
	}
	return n, nil
}

// Bool returns the boolean parameter under key, defaulting to false when
// the key is absent.
func (p Params) Bool(key string) (bool, error) {
	v, ok := p[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

// Duration returns the duration parameter under key, given as a string in
// Go duration syntax (e.g. "72h").
func (p Params) Duration(key string) (time.Duration, error) {
	s, err := p.String(key)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be a duration: %w", key, err)
	}
	return d, nil
}
