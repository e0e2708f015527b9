package authz

const (
	PolicyVersion = "2012-10-17"
	InvokeAction  = "execute-api:Invoke"

	// AnonymousPrincipal is reported on Deny, where no identity was established.
	AnonymousPrincipal = "anonymous"

	// UserContextKey is the authorizer context entry carrying the serialized UserContext.
	UserContextKey = "user"
)

type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// Decision is the outcome of one authorization check. An Allow always has a
// principal and a context; a Deny never has a context.
type Decision struct {
	Effect      Effect
	PrincipalID string
	Resource    string
	Context     map[string]string
}

func (d *Decision) Allowed() bool {
	return d != nil && d.Effect == EffectAllow
}

// Policy renders the decision as the IAM-style document the gate consumes.
func (d *Decision) Policy() *PolicyResponse {
	return &PolicyResponse{
		PrincipalID: d.PrincipalID,
		PolicyDocument: PolicyDocument{
			Version: PolicyVersion,
			Statement: []Statement{{
				Action:   InvokeAction,
				Effect:   d.Effect,
				Resource: d.Resource,
			}},
		},
		Context: d.Context,
	}
}

type PolicyResponse struct {
	PrincipalID    string            `json:"principalId"`
	PolicyDocument PolicyDocument    `json:"policyDocument"`
	Context        map[string]string `json:"context,omitempty"`
}

type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

type Statement struct {
	Action   string `json:"Action"`
	Effect   Effect `json:"Effect"`
	Resource string `json:"Resource"`
}

// TokenEvent is the request a TOKEN authorizer is invoked with.
type TokenEvent struct {
	Type               string `json:"type"`
	AuthorizationToken string `json:"authorizationToken"`
	MethodArn          string `json:"methodArn"`
}
