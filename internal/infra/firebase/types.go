package firebase

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrVerificationFailed is the only error kind a Verifier reports. Expired,
// malformed, badly signed and unverifiable tokens all wrap it.
var ErrVerificationFailed = errors.New("identity token verification failed")

// Claims are the verified identity attributes of a caller.
type Claims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	AuthTime      time.Time
	ExpiresAt     time.Time
}

// Verifier validates an opaque Firebase ID token.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}

func verificationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrVerificationFailed, err)
}
