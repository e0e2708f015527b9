package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/WilsonSunBritten/serverless-tools/internal/infra/firebase"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
)

var ErrAuthenticationFailed = errors.New("authentication failed")

type User struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Session hands the verified ID token back to the caller together with the
// profile it carries.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Service interface {
	Authenticate(ctx context.Context, idToken string) (*Session, error)
}

type service struct {
	verifier firebase.Verifier
}

func NewService(verifier firebase.Verifier) Service {
	return &service{verifier: verifier}
}

func (s *service) Authenticate(ctx context.Context, idToken string) (*Session, error) {
	if idToken == "" {
		return nil, fmt.Errorf("%w: empty id token", ErrAuthenticationFailed)
	}

	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		logger.WarnContext(ctx, "id token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	if claims == nil || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrAuthenticationFailed)
	}

	return &Session{
		Token: idToken,
		User: User{
			Email:   claims.Email,
			Name:    claims.Name,
			Picture: claims.Picture,
		},
	}, nil
}
