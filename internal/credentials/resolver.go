package credentials

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/log"
	"github.com/majorcontext/awscreds/internal/region"
)

// Resolve turns the bound credential configuration into a single effective
// provider. The order of the checks is the precedence of the resulting
// chain when more than one source is configured.
//
// Resolve never returns a nil provider alongside a nil error. Errors come
// only from source builders; an enabled sts section without web-identity
// support registered is skipped, not an error.
func Resolve(ctx context.Context, cfg config.Credentials, regions region.Provider) (aws.CredentialsProvider, error) {
	var providers []aws.CredentialsProvider

	add := func(source string) error {
		fn, ok := builderFor(source)
		if !ok {
			return fmt.Errorf("credential source %q is not registered", source)
		}
		p, err := fn(ctx, cfg, regions)
		if err != nil {
			return fmt.Errorf("building %s credential provider: %w", source, err)
		}
		providers = append(providers, p)
		return nil
	}

	// Static keys count only when both halves are present. A lone access
	// key or secret key is a partial configuration, not a source.
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		if err := add(SourceStatic); err != nil {
			return nil, err
		}
	}

	if cfg.InstanceProfile {
		if err := add(SourceInstanceProfile); err != nil {
			return nil, err
		}
	}

	if cfg.Profile != nil && cfg.Profile.Name != "" {
		if err := add(SourceProfile); err != nil {
			return nil, err
		}
	}

	if cfg.STS != nil {
		if _, ok := builderFor(SourceWebIdentity); !ok {
			log.Debug("web identity credential support is not linked in; ignoring sts configuration",
				"source", SourceWebIdentity)
		} else if cfg.STS.Enabled {
			if err := add(SourceWebIdentity); err != nil {
				return nil, err
			}
		}
	}

	switch len(providers) {
	case 0:
		return NewDefaultProvider(), nil
	case 1:
		return providers[0], nil
	default:
		return NewChain(providers...), nil
	}
}
