package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/WilsonSunBritten/serverless-tools/internal/app/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/config"
)

func newEngine(cfg *config.Config, serviceName string) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	if cfg.Observability.TraceEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return router
}

// NewAuthRouter serves the authorizer, the gated demo endpoint and the
// authenticate endpoint. rpcPath and rpcHandler mount the Connect service.
func NewAuthRouter(
	handler *AuthHandler,
	authzService authz.Service,
	cfg *config.Config,
	rpcPath string,
	rpcHandler http.Handler,
) *gin.Engine {
	router := newEngine(cfg, AuthServiceName)

	router.POST("/authorizer", handler.Authorizer)
	router.Any(rpcPath+"*method", gin.WrapH(rpcHandler))

	demo := router.Group("/demo",
		fixedCORSMiddleware(cfg),
		gateMiddleware(authzService, cfg.Auth.ResourcePrefix),
	)
	demo.GET("", handler.Protected)
	demo.OPTIONS("", handler.Protected)

	auth := router.Group("/auth", fixedCORSMiddleware(cfg))
	auth.POST("/authenticate", handler.Authenticate)
	auth.OPTIONS("/authenticate", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func NewFunctionsRouter(handler *FunctionsHandler, cfg *config.Config) *gin.Engine {
	router := newEngine(cfg, FunctionsServiceName)

	api := router.Group("/api", chiCORSMiddleware(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: splitList(cfg.CORS.AllowedHeaders),
	}))
	api.GET("/ListFunctions", handler.ListFunctions)
	api.POST("/RegisterFunction", handler.RegisterFunction)
	api.GET("/SampleEndpoint", handler.SampleEndpoint)
	// pre-flights are answered by the cors middleware; the route only makes
	// gin run the group chain for them.
	api.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return router
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
