// Package credentials turns credential configuration into a single effective
// aws.CredentialsProvider.
//
// Each credential source (static keys, EC2 instance profile, shared-profile
// file, STS web identity) registers a builder with the package registry via
// init() in its own file. Resolve walks the configuration in a fixed order,
// builds a provider for every configured source, and returns:
//
//   - the SDK default chain when nothing is configured,
//   - the provider itself when exactly one source is configured,
//   - a Chain trying each source in order when several are.
//
// Web-identity support is a soft capability: when its builder is not
// registered, an enabled sts section is skipped with a debug log rather
// than failing resolution.
//
// Resolution runs once at startup. The returned provider may later be
// retrieved from concurrently; every provider this package returns is safe
// for concurrent use.
package credentials
