package credentials

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/majorcontext/awscreds/internal/config"
	"github.com/majorcontext/awscreds/internal/region"
)

// Credential source names, in resolution order.
const (
	SourceStatic          = "static"
	SourceInstanceProfile = "instance-profile"
	SourceProfile         = "profile"
	SourceWebIdentity     = "web-identity"
)

// BuilderFunc constructs a credential provider for one source from the
// bound configuration. Builders must not perform network I/O beyond what
// the SDK constructors themselves do.
type BuilderFunc func(ctx context.Context, cfg config.Credentials, regions region.Provider) (aws.CredentialsProvider, error)

var (
	mu       sync.RWMutex
	builders = make(map[string]BuilderFunc)
)

// RegisterBuilder adds a source builder to the registry. Source files call
// this from init(); a source whose file is not linked in is simply absent.
func RegisterBuilder(name string, fn BuilderFunc) {
	mu.Lock()
	defer mu.Unlock()
	builders[name] = fn
}

// builderFor returns the builder for a source, or false if not registered.
func builderFor(name string) (BuilderFunc, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := builders[name]
	return fn, ok
}

// BuilderNames returns the names of all registered source builders, sorted.
func BuilderNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unregisterBuilder removes a source builder and returns it. For testing only.
func unregisterBuilder(name string) BuilderFunc {
	mu.Lock()
	defer mu.Unlock()
	fn := builders[name]
	delete(builders, name)
	return fn
}
