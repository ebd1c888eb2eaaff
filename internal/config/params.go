package config

import "fmt"

// Params holds the free-form parameters of a module.
type Params map[string]interface{}

// Float returns a required numeric parameter.
func (p Params) Float(module, name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, &ConfigError{Module: module, Param: name, Msg: fmt.Sprintf("missing required parameter %s", name)}
	}
	f, ok := toFloat64(v)
	if !ok {
		return 0, &ConfigError{Module: module, Param: name, Msg: fmt.Sprintf("parameter %s must be a number, got %T", name, v)}
	}
	return f, nil
}

// String returns a required non-empty string parameter.
func (p Params) String(module, name string) (string, error) {
	v, ok := p[name]
	if !ok {
		return "", &ConfigError{Module: module, Param: name, Msg: fmt.Sprintf("missing required parameter %s", name)}
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", &ConfigError{Module: module, Param: name, Msg: fmt.Sprintf("parameter %s must be a non-empty string", name)}
	}
	return s, nil
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
