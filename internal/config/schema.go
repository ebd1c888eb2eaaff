package config

// Config is the top-level YAML structure.
type Config struct {
	Version string      `yaml:"version"`
	Process string      `yaml:"process"`
	Log     LogConf     `yaml:"log"`
	Engine  EngineConf  `yaml:"engine"`
	Random  RandomConf  `yaml:"random"`
	Source  SourceConf  `yaml:"source"`
	Output  OutputConf  `yaml:"output"`
	Modules []ModuleDef `yaml:"modules"`
}

// LogConf selects the slog level and handler.
type LogConf struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// EngineConf holds tunable concurrency settings.
type EngineConf struct {
	Streams        int `yaml:"streams"`
	QueueDepth     int `yaml:"queue_depth"`
	EventTimeoutMs int `yaml:"event_timeout_ms"`
}

// RandomConf seeds the per-stream engines.
type RandomConf struct {
	Seed uint64 `yaml:"seed"`
}

// SourceConf is where ingested generator events are stored in the record.
type SourceConf struct {
	Label    string `yaml:"label"`
	Instance string `yaml:"instance"`
}

// OutputConf selects the sink that smeared events are published to.
type OutputConf struct {
	Kind      string `yaml:"kind"` // none, file, redis
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
}

// ModuleDef declares one producer in the processing chain.
type ModuleDef struct {
	Label   string `yaml:"label"`
	Type    string `yaml:"type"`
	Enabled *bool  `yaml:"enabled,omitempty"` // nil = enabled
	Params  Params `yaml:"params"`
}

// IsEnabled reports whether the module takes part in the chain.
func (m ModuleDef) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}
