package sdk

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// refreshCoordinator fans concurrent refresh attempts into a single call to
// the registered RefreshFunc. Every caller that observes a rejected
// credential while a refresh is in flight attaches to that flight and shares
// its outcome; the flight slot clears on completion so the next failure can
// start a fresh attempt.
type refreshCoordinator struct {
	creds  *CredentialStore
	flight singleflight.Group
}

// refresh returns the new bearer token, or "" when no refresh path is
// registered or the attempt failed. It never surfaces an error: "no new
// token" is the uniform failure signal, and callers treat it as
// unauthenticated.
func (r *refreshCoordinator) refresh(ctx context.Context) string {
	fn := r.creds.refreshFunc()
	if fn == nil {
		return ""
	}
	// The refresh runs detached from the triggering request's deadline: a
	// successful refresh benefits every waiter, even if the first caller has
	// already given up.
	detached := context.WithoutCancel(ctx)
	v, _, _ := r.flight.Do("refresh", func() (any, error) {
		token, err := fn(detached)
		if err != nil || token == "" {
			return "", nil
		}
		r.creds.SetToken(token)
		return token, nil
	})
	token, _ := v.(string)
	return token
}
