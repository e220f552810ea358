package credentials

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/region"
)

func init() {
	RegisterBuilder(SourceInstanceProfile, buildInstanceProfile)
}

// buildInstanceProfile returns a provider backed by the EC2 instance
// metadata service. No probing happens here; an off-instance host fails at
// first retrieve, not at construction.
func buildInstanceProfile(_ context.Context, _ config.Credentials, _ region.Provider) (aws.CredentialsProvider, error) {
	return ec2rolecreds.New(), nil
}
