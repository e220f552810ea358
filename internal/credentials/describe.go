package credentials

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkcreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"
)

// Describe returns a short human-readable name for a resolved provider,
// e.g. "static", "profile dev" or "chain(static, instance-profile)".
func Describe(p aws.CredentialsProvider) string {
	switch v := p.(type) {
	case sdkcreds.StaticCredentialsProvider:
		return SourceStatic
	case *ec2rolecreds.Provider:
		return SourceInstanceProfile
	case *ProfileProvider:
		return fmt.Sprintf("%s %s", SourceProfile, v.ProfileName())
	case *WebIdentityProvider:
		return SourceWebIdentity
	case *DefaultProvider:
		return "default-chain"
	case *Chain:
		parts := make([]string, 0, len(v.providers))
		for _, member := range v.providers {
			parts = append(parts, Describe(member))
		}
		return fmt.Sprintf("chain(%s)", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("%T", p)
	}
}
