package credentials

import (
	"context"
	"testing"

	sdkcreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/region"
)

var testRegion = region.Static("us-east-1")

func clearSTSEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envRoleARN, "")
	t.Setenv(envTokenFile, "")
	t.Setenv(envSessionName, "")
}

func TestResolve_NothingConfigured(t *testing.T) {
	p, err := Resolve(context.Background(), config.Credentials{}, testRegion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*DefaultProvider); !ok {
		t.Errorf("Resolve() = %T, want *DefaultProvider", p)
	}
}

func TestResolve_SingleSourceIsNotWrapped(t *testing.T) {
	clearSTSEnv(t)

	tests := []struct {
		name string
		cfg  config.Credentials
		want string
	}{
		{
			name: "static",
			cfg:  config.Credentials{AccessKey: "AKIA", SecretKey: "secret"},
			want: SourceStatic,
		},
		{
			name: "instance profile",
			cfg:  config.Credentials{InstanceProfile: true},
			want: SourceInstanceProfile,
		},
		{
			name: "profile",
			cfg:  config.Credentials{Profile: &config.Profile{Name: "dev"}},
			want: "profile dev",
		},
		{
			name: "web identity",
			cfg: config.Credentials{STS: &config.STS{
				Enabled: true,
				RoleARN: "arn:aws:iam::123456789012:role/app",
			}},
			want: SourceWebIdentity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(context.Background(), tt.cfg, testRegion)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := p.(*Chain); ok {
				t.Fatalf("single source should not be wrapped in a Chain, got %s", Describe(p))
			}
			if got := Describe(p); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_PartialStaticKeysIgnored(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Credentials
	}{
		{name: "access key only", cfg: config.Credentials{AccessKey: "AKIA"}},
		{name: "secret key only", cfg: config.Credentials{SecretKey: "secret"}},
		{name: "empty secret key", cfg: config.Credentials{AccessKey: "AKIA", SecretKey: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve(context.Background(), tt.cfg, testRegion)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := p.(*DefaultProvider); !ok {
				t.Errorf("partial static keys should fall through to the default chain, got %s", Describe(p))
			}
		})
	}
}

func TestResolve_STSDisabledIsSkipped(t *testing.T) {
	// enabled is the sole gate; populated fields don't matter.
	cfg := config.Credentials{STS: &config.STS{
		Enabled:              false,
		RoleARN:              "arn:aws:iam::123456789012:role/app",
		WebIdentityTokenFile: "/var/run/secrets/token",
		RoleSessionName:      "app",
	}}

	p, err := Resolve(context.Background(), cfg, testRegion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*DefaultProvider); !ok {
		t.Errorf("disabled sts should fall through to the default chain, got %s", Describe(p))
	}
}

func TestResolve_WebIdentitySupportNotRegistered(t *testing.T) {
	fn := unregisterBuilder(SourceWebIdentity)
	if fn == nil {
		t.Fatal("web identity builder not registered")
	}
	t.Cleanup(func() { RegisterBuilder(SourceWebIdentity, fn) })

	cfg := config.Credentials{
		AccessKey: "AKIA",
		SecretKey: "secret",
		STS:       &config.STS{Enabled: true, RoleARN: "arn:aws:iam::123456789012:role/app"},
	}

	p, err := Resolve(context.Background(), cfg, testRegion)
	if err != nil {
		t.Fatalf("missing web identity support must not be an error, got: %v", err)
	}
	if _, ok := p.(sdkcreds.StaticCredentialsProvider); !ok {
		t.Errorf("expected the remaining static source unwrapped, got %s", Describe(p))
	}
}

func TestResolve_ProfilePathDefaultsToSharedLocation(t *testing.T) {
	cfg := config.Credentials{Profile: &config.Profile{Name: "dev"}}

	p, err := Resolve(context.Background(), cfg, testRegion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pp, ok := p.(*ProfileProvider)
	if !ok {
		t.Fatalf("Resolve() = %T, want *ProfileProvider", p)
	}
	if pp.ProfileName() != "dev" {
		t.Errorf("ProfileName() = %q, want %q", pp.ProfileName(), "dev")
	}
	if pp.Path() != "" {
		t.Errorf("Path() = %q, want empty (SDK default location)", pp.Path())
	}
}

func TestResolve_ChainOrder(t *testing.T) {
	clearSTSEnv(t)

	cfg := config.Credentials{
		AccessKey:       "AKIA",
		SecretKey:       "secret",
		InstanceProfile: true,
		Profile:         &config.Profile{Name: "dev", Path: "/etc/aws/credentials"},
		STS: &config.STS{
			Enabled: true,
			RoleARN: "arn:aws:iam::123456789012:role/app",
		},
	}

	p, err := Resolve(context.Background(), cfg, testRegion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chain, ok := p.(*Chain)
	if !ok {
		t.Fatalf("Resolve() = %T, want *Chain", p)
	}

	members := chain.Providers()
	if len(members) != 4 {
		t.Fatalf("chain has %d members, want 4", len(members))
	}
	if _, ok := members[0].(sdkcreds.StaticCredentialsProvider); !ok {
		t.Errorf("members[0] = %T, want static", members[0])
	}
	if _, ok := members[1].(*ec2rolecreds.Provider); !ok {
		t.Errorf("members[1] = %T, want instance profile", members[1])
	}
	if _, ok := members[2].(*ProfileProvider); !ok {
		t.Errorf("members[2] = %T, want profile", members[2])
	}
	if _, ok := members[3].(*WebIdentityProvider); !ok {
		t.Errorf("members[3] = %T, want web identity", members[3])
	}
}

func TestResolve_StaticPlusInstanceProfile(t *testing.T) {
	cfg := config.Credentials{
		AccessKey:       "A",
		SecretKey:       "B",
		InstanceProfile: true,
	}

	p, err := Resolve(context.Background(), cfg, testRegion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chain, ok := p.(*Chain)
	if !ok {
		t.Fatalf("Resolve() = %T, want *Chain", p)
	}

	members := chain.Providers()
	if len(members) != 2 {
		t.Fatalf("chain has %d members, want 2", len(members))
	}
	static, ok := members[0].(sdkcreds.StaticCredentialsProvider)
	if !ok {
		t.Fatalf("members[0] = %T, want static", members[0])
	}
	if static.Value.AccessKeyID != "A" || static.Value.SecretAccessKey != "B" {
		t.Errorf("static credentials = %q/%q, want A/B",
			static.Value.AccessKeyID, static.Value.SecretAccessKey)
	}
	if _, ok := members[1].(*ec2rolecreds.Provider); !ok {
		t.Errorf("members[1] = %T, want instance profile", members[1])
	}
}

func TestResolve_StaticRetrieve(t *testing.T) {
	cfg := config.Credentials{AccessKey: "AKIA", SecretKey: "secret"}
	p, err := Resolve(context.Background(), cfg, testRegion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	creds, err := p.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if creds.AccessKeyID != "AKIA" || creds.SecretAccessKey != "secret" {
		t.Errorf("Retrieve() = %q/%q, want AKIA/secret", creds.AccessKeyID, creds.SecretAccessKey)
	}
	if creds.CanExpire {
		t.Error("static credentials must not expire")
	}
}

func TestBuilderNames(t *testing.T) {
	names := BuilderNames()
	want := map[string]bool{
		SourceStatic:          false,
		SourceInstanceProfile: false,
		SourceProfile:         false,
		SourceWebIdentity:     false,
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("builder %q not registered", n)
		}
	}
}
