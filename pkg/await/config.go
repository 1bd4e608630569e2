package await

import (
	"os"
	"time"

	"github.com/core-tools/hsu-proxy-await/pkg/duration"
	"github.com/core-tools/hsu-proxy-await/pkg/errors"

	"gopkg.in/yaml.v3"
)

// Config is the immutable runtime configuration, assembled once at
// startup from defaults, an optional configuration file and the command
// line, in that precedence order.
type Config struct {
	// Port of the local proxy admin server.
	Port int

	// Backoff is the constant delay between failed readiness checks.
	Backoff time.Duration

	// Timeout bounds the whole readiness wait. Zero means unbounded.
	Timeout time.Duration

	// TimeoutFatal controls whether an elapsed readiness timeout
	// terminates the invocation instead of proceeding.
	TimeoutFatal bool

	// Shutdown selects supervision: fork the command, forward SIGTERM,
	// and request proxy shutdown once the child exits.
	Shutdown bool

	// Verbose enables debug diagnostics.
	Verbose bool

	// Command and Args describe the target program. Command may be
	// empty, in which case the gate exits after the proxy is ready.
	Command string
	Args    []string
}

func DefaultConfig() Config {
	return Config{
		Port:         4191,
		Backoff:      time.Second,
		TimeoutFatal: true,
	}
}

// FileConfig is the YAML file representation of Config. All fields are
// optional; pointer fields distinguish "unset" from an explicit zero
// value so that file settings only override what they actually mention.
type FileConfig struct {
	Port         *int               `yaml:"port,omitempty"`
	Backoff      *duration.Duration `yaml:"backoff,omitempty"`
	Timeout      *duration.Duration `yaml:"timeout,omitempty"`
	TimeoutFatal *bool              `yaml:"timeout_fatal,omitempty"`
	Shutdown     *bool              `yaml:"shutdown,omitempty"`
	Verbose      *bool              `yaml:"verbose,omitempty"`
	Command      string             `yaml:"command,omitempty"`
	Args         []string           `yaml:"args,omitempty"`
}

// LoadConfigFromFile loads await configuration from a YAML file.
func LoadConfigFromFile(filename string) (*FileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.NewValidationError("failed to read configuration file", err).WithContext("filename", filename)
	}

	var fileConfig FileConfig
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return nil, errors.NewValidationError("failed to parse YAML configuration", err).WithContext("filename", filename)
	}

	return &fileConfig, nil
}

// Apply overlays the file settings onto cfg.
func (f *FileConfig) Apply(cfg *Config) {
	if f.Port != nil {
		cfg.Port = *f.Port
	}
	if f.Backoff != nil {
		cfg.Backoff = f.Backoff.Std()
	}
	if f.Timeout != nil {
		cfg.Timeout = f.Timeout.Std()
	}
	if f.TimeoutFatal != nil {
		cfg.TimeoutFatal = *f.TimeoutFatal
	}
	if f.Shutdown != nil {
		cfg.Shutdown = *f.Shutdown
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
	if f.Command != "" {
		cfg.Command = f.Command
		cfg.Args = f.Args
	}
}

// ValidateConfig checks the assembled configuration before anything runs.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.NewValidationError("configuration cannot be nil", nil)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.NewValidationError("admin port must be in range 1-65535", nil).WithContext("port", cfg.Port)
	}
	if cfg.Backoff <= 0 {
		return errors.NewValidationError("backoff must be positive", nil).WithContext("backoff", cfg.Backoff)
	}
	if cfg.Timeout < 0 {
		return errors.NewValidationError("timeout cannot be negative", nil).WithContext("timeout", cfg.Timeout)
	}
	if cfg.Shutdown && cfg.Command == "" {
		return errors.NewValidationError("shutdown requires a command to supervise", nil)
	}
	return nil
}
