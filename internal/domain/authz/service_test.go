package authz_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/infra/firebase"
)

const testResource = "arn:aws:execute-api:local:000000000000:authdemo/dev/GET/demo"

type mockVerifier struct {
	calls      int
	verifyFunc func(ctx context.Context, token string) (*firebase.Claims, error)
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*firebase.Claims, error) {
	m.calls++
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, token)
	}
	if token == "good-token" {
		return &firebase.Claims{Subject: "u1", Name: "Ann", Email: "a@x.com"}, nil
	}
	return nil, fmt.Errorf("%w: signature invalid", firebase.ErrVerificationFailed)
}

func TestService_Authorize_ValidToken(t *testing.T) {
	verifier := &mockVerifier{}
	svc := authz.NewService(verifier)

	decision := svc.Authorize(context.Background(), "Bearer good-token", testResource)

	if !decision.Allowed() {
		t.Fatalf("expected allow, got %+v", decision)
	}
	if decision.PrincipalID != "u1" {
		t.Errorf("expected principal u1, got %q", decision.PrincipalID)
	}
	if decision.Resource != testResource {
		t.Errorf("expected resource to be echoed, got %q", decision.Resource)
	}
	if got := decision.Context[authz.UserContextKey]; got != `{"email":"a@x.com","name":"Ann"}` {
		t.Errorf("unexpected user context %q", got)
	}
	if verifier.calls != 1 {
		t.Errorf("expected exactly one verification, got %d", verifier.calls)
	}
}

func TestService_Authorize_ContextRoundTrip(t *testing.T) {
	svc := authz.NewService(&mockVerifier{})

	decision := svc.Authorize(context.Background(), "Bearer good-token", testResource)
	user, err := authz.UserContextFrom(decision.Context)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Ann" || user.Email != "a@x.com" {
		t.Errorf("round trip lost claims: %+v", user)
	}
}

func TestUserContextFrom_RejectsNonObjects(t *testing.T) {
	for _, raw := range []string{"null", `"Ann"`, "[]", "42"} {
		t.Run(raw, func(t *testing.T) {
			user, err := authz.UserContextFrom(map[string]string{authz.UserContextKey: raw})
			if err == nil {
				t.Fatalf("expected error for %s, got %+v", raw, user)
			}
		})
	}

	_, err := authz.UserContextFrom(map[string]string{authz.UserContextKey: "null"})
	if !errors.Is(err, authz.ErrMissingUserContext) {
		t.Errorf("expected ErrMissingUserContext for null, got %v", err)
	}
}

func TestService_Authorize_MalformedHeadersDenyWithoutVerifying(t *testing.T) {
	headers := []string{
		"",
		"good-token",
		"bearer good-token",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		" Bearer good-token",
	}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			verifier := &mockVerifier{}
			svc := authz.NewService(verifier)

			decision := svc.Authorize(context.Background(), header, testResource)

			assertDeny(t, decision)
			if verifier.calls != 0 {
				t.Errorf("verifier must not be called for %q", header)
			}
		})
	}
}

func TestService_Authorize_VerifierFailuresCollapseToDeny(t *testing.T) {
	failures := []error{
		fmt.Errorf("%w: token expired", firebase.ErrVerificationFailed),
		fmt.Errorf("%w: fetch signing keys: connection refused", firebase.ErrVerificationFailed),
		errors.New("unexpected verifier error"),
		context.DeadlineExceeded,
	}

	var first *authz.PolicyResponse
	for _, failure := range failures {
		svc := authz.NewService(&mockVerifier{
			verifyFunc: func(_ context.Context, _ string) (*firebase.Claims, error) {
				return nil, failure
			},
		})

		decision := svc.Authorize(context.Background(), "Bearer bad-token", testResource)
		assertDeny(t, decision)

		policy := decision.Policy()
		if first == nil {
			first = policy
			continue
		}
		if !samePolicy(t, first, policy) {
			t.Errorf("deny for %v differs from earlier deny", failure)
		}
	}

	malformed := authz.NewService(&mockVerifier{}).Authorize(context.Background(), "bad-token", testResource)
	if !samePolicy(t, first, malformed.Policy()) {
		t.Error("malformed header deny differs from verifier failure deny")
	}
}

func TestService_Authorize_EmptySubjectDenies(t *testing.T) {
	svc := authz.NewService(&mockVerifier{
		verifyFunc: func(_ context.Context, _ string) (*firebase.Claims, error) {
			return &firebase.Claims{Name: "Ann"}, nil
		},
	})

	assertDeny(t, svc.Authorize(context.Background(), "Bearer good-token", testResource))
}

func TestDecision_Policy_Shape(t *testing.T) {
	svc := authz.NewService(&mockVerifier{})

	data, err := json.Marshal(svc.Authorize(context.Background(), "Bearer bad-token", testResource).Policy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"principalId":"anonymous","policyDocument":{"Version":"2012-10-17","Statement":[{"Action":"execute-api:Invoke","Effect":"Deny","Resource":"` + testResource + `"}]}}`
	if string(data) != want {
		t.Errorf("unexpected deny policy:\n got %s\nwant %s", data, want)
	}
}

func assertDeny(t *testing.T, decision *authz.Decision) {
	t.Helper()
	if decision.Allowed() {
		t.Fatalf("expected deny, got %+v", decision)
	}
	if decision.Effect != authz.EffectDeny {
		t.Errorf("expected Deny effect, got %q", decision.Effect)
	}
	if decision.PrincipalID != authz.AnonymousPrincipal {
		t.Errorf("expected anonymous principal, got %q", decision.PrincipalID)
	}
	if decision.Context != nil {
		t.Errorf("deny must not carry context, got %v", decision.Context)
	}
	if decision.Resource != testResource {
		t.Errorf("expected resource to be echoed, got %q", decision.Resource)
	}
}

func samePolicy(t *testing.T, a, b *authz.PolicyResponse) bool {
	t.Helper()
	left, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	right, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	return string(left) == string(right)
}
