package credentials

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"golang.org/x/sync/singleflight"
)

// DefaultProvider defers to the SDK's default credential resolution chain
// (environment, shared config, SSO, IMDS, in the SDK's own precedence
// order). The chain is built lazily on first retrieve; concurrent first
// retrieves share a single load, and a failed load is retried on the next
// call rather than cached.
type DefaultProvider struct {
	mu    sync.RWMutex
	inner aws.CredentialsProvider
	group singleflight.Group
}

var _ aws.CredentialsProvider = (*DefaultProvider)(nil)

// NewDefaultProvider returns a provider over the SDK default chain.
func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// Retrieve returns credentials from the SDK default chain.
func (p *DefaultProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	p.mu.RLock()
	inner := p.inner
	p.mu.RUnlock()

	if inner == nil {
		v, err, _ := p.group.Do("load", func() (any, error) {
			cfg, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return nil, err
			}
			p.mu.Lock()
			p.inner = cfg.Credentials
			p.mu.Unlock()
			return cfg.Credentials, nil
		})
		if err != nil {
			return aws.Credentials{}, fmt.Errorf("loading default credential chain: %w", err)
		}
		inner = v.(aws.CredentialsProvider)
	}

	return inner.Retrieve(ctx)
}
