package firebase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	httpclient "github.com/WilsonSunBritten/serverless-tools/pkg/http"
)

const defaultKeyTTL = time.Hour

// keySource holds Google's token signing keys and refetches them once the
// Cache-Control max-age of the last response has elapsed.
type keySource struct {
	url    string
	client *httpclient.Client
	now    func() time.Time

	mu        sync.Mutex
	jwks      *keyfunc.JWKS
	expiresAt time.Time
}

func newKeySource(url string, client *httpclient.Client, now func() time.Time) *keySource {
	return &keySource{url: url, client: client, now: now}
}

func (s *keySource) keyfunc(ctx context.Context) (jwt.Keyfunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.jwks != nil && s.now().Before(s.expiresAt) {
		return s.jwks.Keyfunc, nil
	}

	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch signing keys: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch signing keys: unexpected status %d", resp.StatusCode())
	}

	jwks, err := keyfunc.NewJSON(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("parse signing keys: %w", err)
	}
	if len(jwks.KIDs()) == 0 {
		return nil, errors.New("parse signing keys: key set is empty")
	}

	s.jwks = jwks
	s.expiresAt = s.now().Add(maxAge(resp.Header().Get("Cache-Control")))
	return s.jwks.Keyfunc, nil
}

func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		value, ok := strings.CutPrefix(strings.TrimSpace(directive), "max-age=")
		if !ok {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultKeyTTL
}
