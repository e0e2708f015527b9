package firebase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	httpclient "github.com/WilsonSunBritten/serverless-tools/pkg/http"
)

const (
	issuerPrefix     = "https://securetoken.google.com/"
	maxSubjectLength = 128
)

type Options struct {
	ProjectID string
	JWKSURL   string
	ClockSkew time.Duration
	// HTTPClient fetches the signing keys; defaults to a dedicated client.
	HTTPClient *httpclient.Client
	Now        func() time.Time
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	AuthTime      int64  `json:"auth_time"`
}

type idTokenVerifier struct {
	projectID string
	issuer    string
	clockSkew time.Duration
	keys      *keySource
	now       func() time.Time
}

// NewVerifier builds the process's single ID token verifier. It is meant to
// be constructed once at startup and shared; signing keys are fetched lazily
// on the first Verify call.
func NewVerifier(opts Options) (Verifier, error) {
	if opts.ProjectID == "" {
		return nil, errors.New("firebase project id is required")
	}
	if opts.JWKSURL == "" {
		return nil, errors.New("firebase jwks url is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = httpclient.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &idTokenVerifier{
		projectID: opts.ProjectID,
		issuer:    issuerPrefix + opts.ProjectID,
		clockSkew: opts.ClockSkew,
		keys:      newKeySource(opts.JWKSURL, client, now),
		now:       now,
	}, nil
}

func (v *idTokenVerifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	if idToken == "" {
		return nil, verificationFailed(errors.New("id token is empty"))
	}

	keyFunc, err := v.keys.keyfunc(ctx)
	if err != nil {
		return nil, verificationFailed(err)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(v.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(v.now),
	)

	var claims idTokenClaims
	if _, err := parser.ParseWithClaims(idToken, &claims, keyFunc); err != nil {
		return nil, verificationFailed(fmt.Errorf("parse id token: %w", err))
	}

	if claims.Subject == "" {
		return nil, verificationFailed(errors.New("id token has no subject"))
	}
	if len(claims.Subject) > maxSubjectLength {
		return nil, verificationFailed(errors.New("id token subject is too long"))
	}

	var authTime time.Time
	if claims.AuthTime > 0 {
		authTime = time.Unix(claims.AuthTime, 0).UTC()
		if authTime.After(v.now().Add(v.clockSkew)) {
			return nil, verificationFailed(errors.New("id token auth_time is in the future"))
		}
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.UTC()
	}

	return &Claims{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
		AuthTime:      authTime,
		ExpiresAt:     expiresAt,
	}, nil
}
