// Package region determines the active AWS region for clients constructed
// during credential resolution. Sources are consulted in a fixed order:
// static configuration, environment, then the EC2 instance metadata service.
package region

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/majorcontext/awscreds/internal/config"
)

// ErrNoRegion is returned when a provider cannot determine a region.
var ErrNoRegion = errors.New("no AWS region configured")

// Provider determines the active AWS region.
type Provider interface {
	Region(ctx context.Context) (string, error)
}

// Static always returns a fixed region.
type Static string

// Region returns the static region.
func (s Static) Region(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrNoRegion
	}
	return string(s), nil
}

// Env reads the region from AWS_REGION, falling back to AWS_DEFAULT_REGION.
type Env struct{}

// Region returns the region from the environment.
func (Env) Region(_ context.Context) (string, error) {
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r, nil
	}
	if r := os.Getenv("AWS_DEFAULT_REGION"); r != "" {
		return r, nil
	}
	return "", fmt.Errorf("%w: AWS_REGION and AWS_DEFAULT_REGION are unset", ErrNoRegion)
}

// Chain tries each provider in order and returns the first region found.
type Chain []Provider

// Region returns the first region any member provider yields.
func (c Chain) Region(ctx context.Context) (string, error) {
	var errs []error
	for _, p := range c {
		r, err := p.Region(ctx)
		if err == nil {
			return r, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", ErrNoRegion
	}
	return "", fmt.Errorf("%w: %w", ErrNoRegion, errors.Join(errs...))
}

// Resolve builds the effective region provider for the given configuration.
// A static region wins outright; otherwise the environment is consulted
// first, then the instance metadata service unless disabled.
func Resolve(cfg config.Region) Provider {
	if cfg.Static != "" {
		return Static(cfg.Static)
	}
	chain := Chain{Env{}}
	if cfg.UseInstanceMetadata() {
		chain = append(chain, NewIMDS())
	}
	if len(chain) == 1 {
		return chain[0]
	}
	return chain
}
