package authz

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMissingUserContext = errors.New("authorizer user context is missing")

// UserContext is the snapshot of claims handed to downstream handlers.
// Absent claims are omitted from the serialized form.
type UserContext struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

func (u UserContext) Encode() (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("marshal user context: %w", err)
	}
	return string(data), nil
}

// UserContextFrom decodes the user entry of an authorizer context.
func UserContextFrom(authorizerContext map[string]string) (*UserContext, error) {
	raw, ok := authorizerContext[UserContextKey]
	if !ok || raw == "" {
		return nil, ErrMissingUserContext
	}

	var u *UserContext
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("unmarshal user context: %w", err)
	}
	if u == nil {
		return nil, ErrMissingUserContext
	}
	return u, nil
}
