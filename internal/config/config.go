// Package config handles awscreds.yaml manifest parsing.
package config

import (
	"fmt"
	"net"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default manifest location when set.
const EnvConfigPath = "AWSCREDS_CONFIG"

// Config represents an awscreds.yaml manifest.
type Config struct {
	Credentials Credentials `yaml:"credentials,omitempty"`
	Region      Region      `yaml:"region,omitempty"`
	Endpoint    Endpoint    `yaml:"endpoint,omitempty"`
}

// Credentials selects which AWS credential sources are configured.
// All fields are optional; an empty value means "resolve via the SDK
// default chain".
type Credentials struct {
	// AccessKey and SecretKey configure static credentials. Both must be
	// set for static credentials to be used; a lone access key or secret
	// key is ignored.
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`

	// InstanceProfile enables EC2 instance-profile credentials from the
	// instance metadata service.
	InstanceProfile bool `yaml:"instance_profile,omitempty"`

	// Profile selects a named profile from a shared credentials file.
	Profile *Profile `yaml:"profile,omitempty"`

	// STS configures web-identity token federation.
	STS *STS `yaml:"sts,omitempty"`
}

// Profile selects a named profile from a shared credentials file.
type Profile struct {
	Name string `yaml:"name"`

	// Path is the location of the credentials file. Empty means the SDK
	// default location (~/.aws/credentials).
	Path string `yaml:"path,omitempty"`
}

// STS configures the web-identity credential provider. Optional fields left
// empty fall back to the SDK's environment defaults (AWS_ROLE_ARN,
// AWS_WEB_IDENTITY_TOKEN_FILE, AWS_ROLE_SESSION_NAME); they are never
// forced to an empty override.
type STS struct {
	Enabled                bool   `yaml:"enabled,omitempty"`
	RoleARN                string `yaml:"role_arn,omitempty"`
	WebIdentityTokenFile   string `yaml:"web_identity_token_file,omitempty"`
	AsyncCredentialsUpdate bool   `yaml:"async_credentials_update,omitempty"`
	RoleSessionName        string `yaml:"role_session_name,omitempty"`
}

// Region configures how the active region is determined.
type Region struct {
	// Static pins the region. When set, no other source is consulted.
	Static string `yaml:"static,omitempty"`

	// InstanceMetadata enables region lookup via the EC2 instance
	// metadata service after the environment. Default: true.
	InstanceMetadata *bool `yaml:"instance_metadata,omitempty"`
}

// UseInstanceMetadata returns whether IMDS region lookup is enabled (default true).
func (r Region) UseInstanceMetadata() bool {
	if r.InstanceMetadata == nil {
		return true
	}
	return *r.InstanceMetadata
}

// Endpoint configures the local credential endpoint served by `awscreds serve`.
type Endpoint struct {
	// Listen is the host:port to bind. Default: 127.0.0.1:9911.
	Listen string `yaml:"listen,omitempty"`

	// AuthToken, when set, requires `Authorization: Bearer <token>` on
	// every request to the endpoint.
	AuthToken string `yaml:"auth_token,omitempty"`
}

// DefaultListen is the default credential endpoint address.
const DefaultListen = "127.0.0.1:9911"

// DefaultPath returns the manifest path: $AWSCREDS_CONFIG if set, else
// awscreds.yaml in the current directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return "awscreds.yaml"
}

// Load reads an awscreds.yaml manifest from the given path.
// Returns nil, nil if the file doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Endpoint.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Endpoint.Listen); err != nil {
			return nil, fmt.Errorf("invalid endpoint.listen %q: %w", cfg.Endpoint.Listen, err)
		}
	}

	return &cfg, nil
}

// DefaultConfig returns a default configuration: no credential source
// configured, region from environment/IMDS, endpoint on the loopback
// default.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: Endpoint{Listen: DefaultListen},
	}
}
