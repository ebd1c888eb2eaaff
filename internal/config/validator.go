package config

import (
	"fmt"
	"strings"
)

var outputKinds = map[string]struct{}{"none": {}, "file": {}, "redis": {}}

// Validate checks the config for:
//   - Required fields and sane engine settings
//   - Duplicate or empty module labels
//   - Output settings matching the selected sink kind
//
// Module parameters are checked when the pipeline constructs each module.
func Validate(cfg *Config) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	if cfg.Engine.Streams < 1 {
		errs = append(errs, fmt.Sprintf("engine.streams must be >= 1, got %d", cfg.Engine.Streams))
	}
	if cfg.Engine.QueueDepth < 1 {
		errs = append(errs, fmt.Sprintf("engine.queue_depth must be >= 1, got %d", cfg.Engine.QueueDepth))
	}
	if cfg.Engine.EventTimeoutMs < 1 {
		errs = append(errs, fmt.Sprintf("engine.event_timeout_ms must be >= 1, got %d", cfg.Engine.EventTimeoutMs))
	}
	if cfg.Source.Label == "" {
		errs = append(errs, "source.label is required")
	}

	if _, ok := outputKinds[cfg.Output.Kind]; !ok {
		errs = append(errs, fmt.Sprintf("output.kind %q is not one of none, file, redis", cfg.Output.Kind))
	}
	switch cfg.Output.Kind {
	case "file":
		if cfg.Output.Path == "" {
			errs = append(errs, "output.path is required for kind file")
		}
	case "redis":
		if cfg.Output.RedisAddr == "" {
			errs = append(errs, "output.redis_addr is required for kind redis")
		}
		if cfg.Output.RedisKey == "" {
			errs = append(errs, "output.redis_key is required for kind redis")
		}
	}

	labels := make(map[string]int)
	for i, m := range cfg.Modules {
		if m.Label == "" {
			errs = append(errs, fmt.Sprintf("modules[%d]: label is required", i))
			continue
		}
		if prev, ok := labels[m.Label]; ok {
			errs = append(errs, fmt.Sprintf("duplicate module label %q (modules[%d] and modules[%d])", m.Label, prev, i))
		} else {
			labels[m.Label] = i
		}
		if m.Label == cfg.Source.Label {
			errs = append(errs, fmt.Sprintf("module %s: label collides with source.label", m.Label))
		}
		if m.Type == "" {
			errs = append(errs, fmt.Sprintf("module %s: type is required", m.Label))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
