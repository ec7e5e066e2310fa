// Package config provides YAML-based configuration loading for the
// simulation engine and its tooling.
package config

// Config is the root configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Replay  ReplayConfig  `yaml:"replay"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig holds the deterministic tick parameters. They are part of
// every engine's identity: two runs only replay identically when these
// match.
type EngineConfig struct {
	TickMultiplier int64 `yaml:"tick_multiplier"`
	TickRate       int   `yaml:"tick_rate"`
}

// ReplayConfig bounds replay stepping.
type ReplayConfig struct {
	MaxStepTicks int64 `yaml:"max_step_ticks"`
}

// StorageConfig locates the recording database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TickMultiplier: 1000,
			TickRate:       60,
		},
		Replay: ReplayConfig{
			MaxStepTicks: 1000,
		},
		Storage: StorageConfig{
			Path: "~/.arcade-sim/recordings.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
