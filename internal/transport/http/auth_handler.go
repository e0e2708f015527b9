package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/WilsonSunBritten/serverless-tools/internal/app/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/app/greeting"
	authzdomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/domain/session"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
	"github.com/WilsonSunBritten/serverless-tools/pkg/tracer"
)

type AuthHandler struct {
	authzService    authz.Service
	greetingService greeting.Service
	sessionService  session.Service
}

func NewAuthHandler(
	authzService authz.Service,
	greetingService greeting.Service,
	sessionService session.Service,
) *AuthHandler {
	return &AuthHandler{
		authzService:    authzService,
		greetingService: greetingService,
		sessionService:  sessionService,
	}
}

// Authorizer answers a TOKEN authorizer event with its policy document.
// Allow and Deny are both 200; only the document differs.
func (h *AuthHandler) Authorizer(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Authorizer")
	defer span.End()

	var event authzdomain.TokenEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	policy := h.authzService.Invoke(ctx, event)
	c.JSON(http.StatusOK, policy)
}

func (h *AuthHandler) Protected(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Protected")
	defer span.End()

	var authorizerContext map[string]string
	if v, ok := c.Get(authorizerContextKey); ok {
		authorizerContext, _ = v.(map[string]string)
	}

	reply, err := h.greetingService.Greet(ctx, authorizerContext)
	if err != nil {
		span.SetAttributes(attribute.Bool("greeting.unauthorized", true))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

type authenticateRequest struct {
	IDToken string `json:"idToken"`
}

func (h *AuthHandler) Authenticate(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.Authenticate")
	defer span.End()

	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	sess, err := h.sessionService.Authenticate(ctx, req.IDToken)
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, session.ErrAuthenticationFailed) {
			logger.ErrorContext(ctx, "unexpected authentication error", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	c.JSON(http.StatusOK, sess)
}
