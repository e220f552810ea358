package region

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

// metadataClient is the slice of the IMDS client used here (enables testing).
type metadataClient interface {
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// IMDS queries the EC2 instance metadata service for the instance's region.
type IMDS struct {
	client metadataClient
}

// NewIMDS creates an IMDS region provider using the SDK's default
// metadata client configuration.
func NewIMDS() *IMDS {
	return &IMDS{client: imds.New(imds.Options{})}
}

// Region returns the region reported by the instance metadata service.
func (p *IMDS) Region(ctx context.Context) (string, error) {
	out, err := p.client.GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		return "", fmt.Errorf("querying instance metadata for region: %w", err)
	}
	if out.Region == "" {
		return "", ErrNoRegion
	}
	return out.Region, nil
}
