package greeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrInvalidContext = errors.New("invalid authorizer context")

type Greeting struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Service interface {
	// Greet assumes the gate already allowed the request and only decodes
	// the context the authorizer attached.
	Greet(ctx context.Context, authorizerContext map[string]string) (*Greeting, error)
}

type service struct {
	now func() time.Time
}

func NewService(now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{now: now}
}

func (s *service) Greet(_ context.Context, authorizerContext map[string]string) (*Greeting, error) {
	user, err := authz.UserContextFrom(authorizerContext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}

	return &Greeting{
		Message:   fmt.Sprintf("Hello %s! This is a protected endpoint.", user.Name),
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}, nil
}
