package credentials

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/log"
	"github.com/majorcontext/awscreds/internal/region"
)

// Environment fallbacks for optional sts fields, matching what the SDK's
// own web-identity resolution reads.
const (
	envRoleARN     = "AWS_ROLE_ARN"
	envTokenFile   = "AWS_WEB_IDENTITY_TOKEN_FILE"
	envSessionName = "AWS_ROLE_SESSION_NAME"
)

func init() {
	RegisterBuilder(SourceWebIdentity, buildWebIdentity)
}

func buildWebIdentity(ctx context.Context, cfg config.Credentials, regions region.Provider) (aws.CredentialsProvider, error) {
	reg, err := regions.Region(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving region for STS client: %w", err)
	}

	log.Debug("constructing web identity credential provider",
		"region", reg, "async", cfg.STS.AsyncCredentialsUpdate)

	client := sts.New(sts.Options{Region: reg})
	return NewWebIdentityProvider(client, *cfg.STS), nil
}

// WebIdentityProvider exchanges a web identity token for temporary
// credentials via sts:AssumeRoleWithWebIdentity. Configured fields override
// the environment; unset fields fall back to the AWS_ROLE_ARN,
// AWS_WEB_IDENTITY_TOKEN_FILE and AWS_ROLE_SESSION_NAME variables.
//
// Credentials are cached and refreshed near expiry. With async update
// enabled a background goroutine keeps the cache warm; callers own the
// provider and should Close it on shutdown to stop that goroutine.
type WebIdentityProvider struct {
	cache     *aws.CredentialsCache
	refresher *refresher

	roleARN     string
	tokenFile   string
	sessionName string
	asyncUpdate bool
}

var _ aws.CredentialsProvider = (*WebIdentityProvider)(nil)

// NewWebIdentityProvider builds a web identity provider from the sts
// configuration section using the given STS client.
func NewWebIdentityProvider(client stscreds.AssumeRoleWithWebIdentityAPIClient, cfg config.STS) *WebIdentityProvider {
	p := &WebIdentityProvider{
		roleARN:     cfg.RoleARN,
		tokenFile:   cfg.WebIdentityTokenFile,
		sessionName: cfg.RoleSessionName,
		asyncUpdate: cfg.AsyncCredentialsUpdate,
	}
	if p.roleARN == "" {
		p.roleARN = os.Getenv(envRoleARN)
	}
	if p.tokenFile == "" {
		p.tokenFile = os.Getenv(envTokenFile)
	}
	if p.sessionName == "" {
		p.sessionName = os.Getenv(envSessionName)
	}

	inner := stscreds.NewWebIdentityRoleProvider(client, p.roleARN,
		stscreds.IdentityTokenFile(p.tokenFile),
		func(o *stscreds.WebIdentityRoleOptions) {
			if p.sessionName != "" {
				o.RoleSessionName = p.sessionName
			}
		})

	p.cache = aws.NewCredentialsCache(inner)
	if p.asyncUpdate {
		p.refresher = newRefresher(p.cache)
	}
	return p
}

// RoleARN returns the effective role ARN (configuration or environment).
func (p *WebIdentityProvider) RoleARN() string { return p.roleARN }

// TokenFile returns the effective web identity token file path.
func (p *WebIdentityProvider) TokenFile() string { return p.tokenFile }

// RoleSessionName returns the effective role session name, or empty when
// the STS default applies.
func (p *WebIdentityProvider) RoleSessionName() string { return p.sessionName }

// AsyncUpdate returns whether background refresh is enabled.
func (p *WebIdentityProvider) AsyncUpdate() bool { return p.asyncUpdate }

// Retrieve returns cached credentials, exchanging the identity token when
// the cache is empty or near expiry.
func (p *WebIdentityProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	return p.cache.Retrieve(ctx)
}

// Close stops the background refresher, if any.
func (p *WebIdentityProvider) Close() {
	if p.refresher != nil {
		p.refresher.Close()
	}
}
