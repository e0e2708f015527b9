package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/WilsonSunBritten/serverless-tools/internal/app/authz"
	authzdomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
	"github.com/WilsonSunBritten/serverless-tools/pkg/tracer"
)

const (
	AuthorizerServiceName = "authorizer.v1.AuthorizerService"
	AuthorizeProcedure    = "/" + AuthorizerServiceName + "/Authorize"
)

var errInvalidEvent = errors.New("invalid authorizer event")

// Handler serves the TOKEN authorizer over Connect. Events and policies
// travel as google.protobuf.Struct so their JSON form matches the HTTP
// endpoint byte for byte.
type Handler struct {
	appService authz.Service
}

func NewHandler(appService authz.Service) *Handler {
	return &Handler{appService: appService}
}

func (h *Handler) Authorize(
	ctx context.Context,
	req *connect.Request[structpb.Struct],
) (*connect.Response[structpb.Struct], error) {
	ctx, span := tracer.Start(ctx, "transport.grpc.Authorize")
	defer span.End()

	event, err := eventFromStruct(req.Msg)
	if err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "invalid authorizer event", slog.String("error", err.Error()))
		return nil, connect.NewError(connect.CodeInvalidArgument, errInvalidEvent)
	}

	policy := h.appService.Invoke(ctx, event)
	span.SetAttributes(attribute.String("authz.principal_id", policy.PrincipalID))

	out, err := structFromPolicy(policy)
	if err != nil {
		span.RecordError(err)
		logger.ErrorContext(ctx, "failed to encode policy", slog.String("error", err.Error()))
		return nil, connect.NewError(connect.CodeInternal, errors.New("internal server error"))
	}

	return connect.NewResponse(out), nil
}

func eventFromStruct(msg *structpb.Struct) (authzdomain.TokenEvent, error) {
	var event authzdomain.TokenEvent

	data, err := protojson.Marshal(msg)
	if err != nil {
		return event, err
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return event, err
	}
	return event, nil
}

func structFromPolicy(policy *authzdomain.PolicyResponse) (*structpb.Struct, error) {
	data, err := json.Marshal(policy)
	if err != nil {
		return nil, err
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
