package cmd

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	authzdomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
	"github.com/WilsonSunBritten/serverless-tools/internal/domain/session"
	httpclient "github.com/WilsonSunBritten/serverless-tools/pkg/http"
)

var errFunctionNotFound = errors.New("function not found")

type demoClient struct {
	http         *httpclient.Client
	functionsURL string
	authURL      string
}

func (c *demoClient) listFunctions(ctx context.Context) ([]registry.FunctionDescriptor, error) {
	var functions []registry.FunctionDescriptor
	resp, err := c.http.Get(ctx, join(c.functionsURL, "/api/ListFunctions"), httpclient.WithResult(&functions))
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}
	return functions, nil
}

func (c *demoClient) registerFunction(ctx context.Context, descriptor registry.FunctionDescriptor) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	resp, err := c.http.Post(ctx, join(c.functionsURL, "/api/RegisterFunction"),
		httpclient.WithBody(descriptor),
		httpclient.WithResult(&out),
	)
	if err := checkResponse(resp, err); err != nil {
		return "", fmt.Errorf("failed to register function: %w", err)
	}
	return out.Message, nil
}

// invokeFunction looks name up in the registry and calls path on its URL.
func (c *demoClient) invokeFunction(ctx context.Context, name, path string) (string, error) {
	functions, err := c.listFunctions(ctx)
	if err != nil {
		return "", err
	}

	for _, fn := range functions {
		if fn.Name != name {
			continue
		}
		resp, err := c.http.Get(ctx, join(fn.URL, path))
		if err := checkResponse(resp, err); err != nil {
			return "", fmt.Errorf("failed to invoke %s: %w", name, err)
		}
		return resp.String(), nil
	}

	return "", fmt.Errorf("%w: %s", errFunctionNotFound, name)
}

func (c *demoClient) authorize(ctx context.Context, token, resource string) (*authzdomain.PolicyResponse, error) {
	header := token
	if header != "" && !strings.HasPrefix(header, "Bearer ") {
		header = "Bearer " + header
	}

	var policy authzdomain.PolicyResponse
	resp, err := c.http.Post(ctx, join(c.authURL, "/authorizer"),
		httpclient.WithBody(authzdomain.TokenEvent{
			Type:               "TOKEN",
			AuthorizationToken: header,
			MethodArn:          resource,
		}),
		httpclient.WithResult(&policy),
	)
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to authorize: %w", err)
	}
	return &policy, nil
}

// callProtected returns the status and raw body; 401 and 403 are answers,
// not errors.
func (c *demoClient) callProtected(ctx context.Context, token string) (int, string, error) {
	resp, err := c.http.Get(ctx, join(c.authURL, "/demo"), httpclient.WithAuthToken(token))
	if err != nil {
		return 0, "", fmt.Errorf("failed to call protected endpoint: %w", err)
	}
	return resp.StatusCode(), resp.String(), nil
}

func (c *demoClient) login(ctx context.Context, idToken string) (*session.Session, error) {
	var sess session.Session
	resp, err := c.http.Post(ctx, join(c.authURL, "/auth/authenticate"),
		httpclient.WithBody(map[string]string{"idToken": idToken}),
		httpclient.WithResult(&sess),
	)
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return &sess, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(resp.Body(), &body) == nil {
			if msg := cmp.Or(body.Error, body.Message); msg != "" {
				return fmt.Errorf("%s: %s", resp.Status(), msg)
			}
		}
		return errors.New(resp.Status())
	}
	return nil
}

func join(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
