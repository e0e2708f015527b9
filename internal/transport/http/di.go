package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	authzapp "github.com/WilsonSunBritten/serverless-tools/internal/app/authz"
	greetingapp "github.com/WilsonSunBritten/serverless-tools/internal/app/greeting"
	registryapp "github.com/WilsonSunBritten/serverless-tools/internal/app/registry"
	"github.com/WilsonSunBritten/serverless-tools/internal/config"
	authzdomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
	greetingdomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/greeting"
	registrydomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
	"github.com/WilsonSunBritten/serverless-tools/internal/domain/session"
	"github.com/WilsonSunBritten/serverless-tools/internal/infra/firebase"
	"github.com/WilsonSunBritten/serverless-tools/internal/infra/store"
	grpctransport "github.com/WilsonSunBritten/serverless-tools/internal/transport/grpc"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
	"github.com/WilsonSunBritten/serverless-tools/pkg/otel"
	"github.com/WilsonSunBritten/serverless-tools/pkg/tracer"
)

type Server struct {
	httpServer *http.Server
	closers    []func() error
}

const (
	idleTimeoutMultiplier = 2

	AuthServiceName      = "serverless-auth-demo"
	FunctionsServiceName = "serverless-functions"
)

func initObservability(cfg *config.Config, serviceName string) error {
	logger.Init(logger.Options{
		Level:     cfg.Observability.LogLevel,
		Format:    cfg.Observability.Format,
		AddSource: cfg.Observability.LogSource,
		Service:   serviceName,
	})

	otelCfg := otel.DefaultConfig()
	otelCfg.ServiceName = serviceName
	otelCfg.EndpointURL = cfg.Observability.TracingEndpointURL
	otelCfg.Enabled = cfg.Observability.TraceEnabled
	if err := tracer.InitTracer(serviceName, otelCfg); err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}
	return nil
}

func NewAuthServer(cfg *config.Config) (*Server, error) {
	if err := initObservability(cfg, AuthServiceName); err != nil {
		return nil, err
	}

	verifier, err := firebase.NewVerifier(firebase.Options{
		ProjectID: cfg.Auth.Firebase.ProjectID,
		JWKSURL:   cfg.Auth.Firebase.JWKSURL,
		ClockSkew: cfg.Auth.Firebase.ClockSkew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase verifier: %w", err)
	}

	authzService := authzapp.NewService(authzdomain.NewService(verifier))
	greetingService := greetingapp.NewService(greetingdomain.NewService(time.Now))
	sessionService := session.NewService(verifier)

	rpcPath, rpcHandler := grpctransport.NewRouter(grpctransport.NewHandler(authzService))

	handler := NewAuthHandler(authzService, greetingService, sessionService)
	router := NewAuthRouter(handler, authzService, cfg, rpcPath, rpcHandler)

	return newServer(cfg, cfg.Server.Addr, router), nil
}

func NewFunctionsServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := initObservability(cfg, FunctionsServiceName); err != nil {
		return nil, err
	}

	registryStore, closeStore, err := store.New(ctx, cfg.Registry.Backend, cfg.Redis.URL, cfg.Redis.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry store: %w", err)
	}

	domainService := registrydomain.NewService(registrydomain.Seed(cfg.Registry.SampleFunctionURL), registryStore)
	handler := NewFunctionsHandler(registryapp.NewService(domainService), time.Now)
	router := NewFunctionsRouter(handler, cfg)

	srv := newServer(cfg, cfg.Functions.Addr, router)
	srv.closers = append(srv.closers, closeStore)
	return srv, nil
}

func newServer(cfg *config.Config, addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.ReadTimeout * idleTimeoutMultiplier,
		},
	}
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests for at most shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	serverErrChan := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting HTTP server", slog.String("addr", s.Addr()))
		if listenErr := s.ListenAndServe(); listenErr != nil &&
			!errors.Is(listenErr, http.ErrServerClosed) {
			serverErrChan <- listenErr
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "shutting down server")
	case serveErr = <-serverErrChan:
		logger.ErrorContext(ctx, "server error, shutting down", slog.String("error", serveErr.Error()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := s.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.ErrorContext(shutdownCtx, "server forced to shutdown", slog.String("error", shutdownErr.Error()))
		serveErr = errors.Join(serveErr, shutdownErr)
	} else {
		logger.InfoContext(shutdownCtx, "server stopped gracefully")
	}

	if shutdownErr := otel.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.ErrorContext(shutdownCtx, "failed to shutdown tracer provider", slog.String("error", shutdownErr.Error()))
	}

	return serveErr
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	for _, closeFn := range s.closers {
		err = errors.Join(err, closeFn())
	}
	return err
}
