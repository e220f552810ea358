package credentials

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/region"
)

func init() {
	RegisterBuilder(SourceProfile, buildProfile)
}

func buildProfile(_ context.Context, cfg config.Credentials, _ region.Provider) (aws.CredentialsProvider, error) {
	return &ProfileProvider{name: cfg.Profile.Name, path: cfg.Profile.Path}, nil
}

// ProfileProvider yields credentials for a named profile in a shared
// credentials file. An explicit path overrides the SDK default location
// (~/.aws/credentials). Loading is deferred to the first retrieve so that a
// missing or malformed file surfaces as a retrieval error, the same way the
// other lazy sources behave.
type ProfileProvider struct {
	name string
	path string

	mu    sync.Mutex
	inner aws.CredentialsProvider
}

var _ aws.CredentialsProvider = (*ProfileProvider)(nil)

// ProfileName returns the configured profile name.
func (p *ProfileProvider) ProfileName() string { return p.name }

// Path returns the explicit credentials file path, or empty for the SDK
// default location.
func (p *ProfileProvider) Path() string { return p.path }

// Retrieve returns credentials for the configured profile.
func (p *ProfileProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	inner, err := p.load(ctx)
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("loading shared profile %q: %w", p.name, err)
	}
	return inner.Retrieve(ctx)
}

func (p *ProfileProvider) load(ctx context.Context) (aws.CredentialsProvider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inner != nil {
		return p.inner, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithSharedConfigProfile(p.name),
	}
	if p.path != "" {
		opts = append(opts, awsconfig.WithSharedCredentialsFiles([]string{p.path}))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	p.inner = cfg.Credentials
	return p.inner, nil
}
