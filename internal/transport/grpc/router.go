package grpc

import (
	"net/http"

	"connectrpc.com/connect"
)

// NewRouter returns the path prefix the authorizer service owns and the
// handler to mount under it.
func NewRouter(handler *Handler) (string, http.Handler) {
	mux := http.NewServeMux()

	mux.Handle(AuthorizeProcedure, connect.NewUnaryHandler(
		AuthorizeProcedure,
		handler.Authorize,
		connect.WithInterceptors(
			recoveryInterceptor(),
			loggingInterceptor(),
		),
	))

	return "/" + AuthorizerServiceName + "/", mux
}
