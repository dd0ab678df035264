package svcrun

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/svcrun/policy"
	"github.com/viant/svcrun/service/meta"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the runner configuration. It can
// be populated from YAML or JSON; the zero value inherits the package
// defaults for every field.
type Config struct {
	// BaseURL is the project root all commands operate on.
	BaseURL string `json:"baseURL" yaml:"baseURL"`
	// EnvFile is loaded into the process environment before dispatch.
	EnvFile string `json:"envFile" yaml:"envFile"`
	// EnsureVenv activates the project virtual environment for tool runs.
	EnsureVenv bool `json:"ensureVenv" yaml:"ensureVenv"`
	// ManifestURL points at a single command manifest to register.
	ManifestURL string `json:"manifestURL" yaml:"manifestURL"`
	// ManifestDirURL points at a directory of *.yaml manifests, registered in
	// lexicographic order.
	ManifestDirURL string `json:"manifestDirURL" yaml:"manifestDirURL"`
	// DefaultTimeoutMs bounds each tool run; zero means no implicit deadline.
	DefaultTimeoutMs int `json:"defaultTimeoutMs" yaml:"defaultTimeoutMs"`
	// Output selects the report format: "table" or "json".
	Output  string         `json:"output" yaml:"output"`
	Publish PublishConfig  `json:"publish" yaml:"publish"`
	Policy  *policy.Config `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// PublishConfig locates the encrypted package-index credentials.
type PublishConfig struct {
	CredentialsURL string `json:"credentialsURL" yaml:"credentialsURL"`
	CredentialsKey string `json:"credentialsKey" yaml:"credentialsKey"`
}

// DefaultConfig returns a Config populated with the package defaults. Callers
// may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    ".",
		EnsureVenv: true,
		Output:     "table",
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Output {
	case "", "table", "json":
	default:
		return fmt.Errorf("output must be table or json, had: %q", c.Output)
	}
	if c.DefaultTimeoutMs < 0 {
		return fmt.Errorf("defaultTimeoutMs must be >= 0, had: %v", c.DefaultTimeoutMs)
	}
	return nil
}

// LoadConfig reads a YAML configuration, expanding ${env.KEY} expressions, and
// overlays it on the defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := meta.New(afs.New(), "").Download(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return config, nil
}
