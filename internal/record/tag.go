package record

import (
	"fmt"
	"strings"
)

// InputTag references a product by producing module label, product instance
// and process name. Empty Instance is the default instance; empty Process
// matches any process.
type InputTag struct {
	Label    string `json:"label" yaml:"label"`
	Instance string `json:"instance,omitempty" yaml:"instance"`
	Process  string `json:"process,omitempty" yaml:"process"`
}

// ParseInputTag parses "label[:instance[:process]]".
func ParseInputTag(s string) (InputTag, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return InputTag{}, fmt.Errorf("input tag %q: too many components", s)
	}
	tag := InputTag{Label: parts[0]}
	if len(parts) > 1 {
		tag.Instance = parts[1]
	}
	if len(parts) > 2 {
		tag.Process = parts[2]
	}
	if tag.Label == "" {
		return InputTag{}, fmt.Errorf("input tag %q: label is required", s)
	}
	return tag, nil
}

// String renders the tag in the form accepted by ParseInputTag.
func (t InputTag) String() string {
	switch {
	case t.Process != "":
		return t.Label + ":" + t.Instance + ":" + t.Process
	case t.Instance != "":
		return t.Label + ":" + t.Instance
	default:
		return t.Label
	}
}
