package credentials

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkcreds "github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/region"
)

func init() {
	RegisterBuilder(SourceStatic, buildStatic)
}

// buildStatic returns a provider for the configured access/secret key pair.
// The resolver only invokes this when both halves are present.
func buildStatic(_ context.Context, cfg config.Credentials, _ region.Provider) (aws.CredentialsProvider, error) {
	return sdkcreds.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""), nil
}
