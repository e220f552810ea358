package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/majorcontext/awscreds/internal/log"
)

// refreshBuffer is how long before expiration credentials are refreshed.
const refreshBuffer = 5 * time.Minute

// refreshRetryInterval is the wait before retrying a failed refresh.
const refreshRetryInterval = time.Minute

// refresher keeps an expiring provider's credentials warm by retrieving
// ahead of expiry in a background goroutine.
type refresher struct {
	provider aws.CredentialsProvider

	done      chan struct{}
	closeOnce sync.Once
}

func newRefresher(p aws.CredentialsProvider) *refresher {
	r := &refresher{
		provider: p,
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *refresher) loop() {
	for {
		wait := refreshRetryInterval

		creds, err := r.provider.Retrieve(context.Background())
		switch {
		case err != nil:
			log.Debug("background credential refresh failed", "error", err)
		case !creds.CanExpire:
			// Nothing to keep warm.
			return
		default:
			if until := time.Until(creds.Expires) - refreshBuffer; until > wait {
				wait = until
			}
		}

		select {
		case <-r.done:
			return
		case <-time.After(wait):
		}
	}
}

// Close stops the refresh loop. Safe to call more than once.
func (r *refresher) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}
