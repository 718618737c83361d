package config

import "time"

// Config is the root taskpool configuration
type Config struct {
	// Workers is the number of worker goroutines in the pool
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Debug enables per-task debug logging and the telemetry summary
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// Output is the default output format (table, json, yaml)
	Output string `mapstructure:"output" yaml:"output"`

	// Run holds defaults for the run command's demo workload
	Run RunConfig `mapstructure:"run" yaml:"run"`
}

// RunConfig configures the demo workload of the run command
type RunConfig struct {
	// Tasks is the number of tasks to submit
	Tasks int `mapstructure:"tasks" yaml:"tasks"`

	// MinDuration is the lower bound of the random task duration
	MinDuration time.Duration `mapstructure:"minDuration" yaml:"minDuration"`

	// MaxDuration is the upper bound of the random task duration
	MaxDuration time.Duration `mapstructure:"maxDuration" yaml:"maxDuration"`

	// ShutdownAfter is how long to wait before an immediate shutdown
	ShutdownAfter time.Duration `mapstructure:"shutdownAfter" yaml:"shutdownAfter"`
}
