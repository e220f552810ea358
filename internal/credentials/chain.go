package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// ErrNoCredentials is returned by a Chain when every member source failed
// to produce credentials.
var ErrNoCredentials = errors.New("no credential source produced credentials")

// Chain tries an ordered list of providers and returns credentials from the
// first one that succeeds. A retrieve attempt is read-only over the member
// list, so a Chain may be retrieved from concurrently.
type Chain struct {
	providers []aws.CredentialsProvider
}

var _ aws.CredentialsProvider = (*Chain)(nil)

// NewChain creates a chain over the given providers, tried in argument order.
func NewChain(providers ...aws.CredentialsProvider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the member providers in retrieval order.
func (c *Chain) Providers() []aws.CredentialsProvider {
	out := make([]aws.CredentialsProvider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Retrieve returns credentials from the first member that yields them. When
// every member fails, the error wraps ErrNoCredentials and joins each
// member's failure.
func (c *Chain) Retrieve(ctx context.Context) (aws.Credentials, error) {
	var errs []error
	for _, p := range c.providers {
		creds, err := p.Retrieve(ctx)
		if err == nil {
			return creds, nil
		}
		errs = append(errs, err)
	}
	return aws.Credentials{}, fmt.Errorf("%w: %w", ErrNoCredentials, errors.Join(errs...))
}
