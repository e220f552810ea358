package cli

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/credentials"
	"github.com/majorcontext/awscreds/internal/region"
)

// loadConfig reads the manifest from --config (or the default location) and
// falls back to defaults when no file exists.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg, nil
}

// resolveProvider loads the manifest and resolves the effective credential
// provider plus the region provider used to construct it.
func resolveProvider(ctx context.Context) (*config.Config, region.Provider, aws.CredentialsProvider, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	regions := region.Resolve(cfg.Region)
	provider, err := credentials.Resolve(ctx, cfg.Credentials, regions)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, regions, provider, nil
}
