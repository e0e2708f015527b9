package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/WilsonSunBritten/serverless-tools/internal/app/authz"
	"github.com/WilsonSunBritten/serverless-tools/internal/config"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"

	// authorizerContextKey holds the Allow decision's context for handlers
	// behind the gate.
	authorizerContextKey = "authorizer.context"
)

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), "request failed", attrs...)
		} else {
			logger.InfoContext(c.Request.Context(), "request completed", attrs...)
		}
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// fixedCORSMiddleware stamps the same four CORS headers on every response,
// whatever the request's Origin.
func fixedCORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	credentials := strconv.FormatBool(cfg.CORS.AllowCredentials)
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.CORS.AllowedOrigin)
		c.Header("Access-Control-Allow-Credentials", credentials)
		c.Header("Access-Control-Allow-Methods", cfg.CORS.AllowedMethods)
		c.Header("Access-Control-Allow-Headers", cfg.CORS.AllowedHeaders)
		c.Next()
	}
}

// gateMiddleware asks the authorizer about every request before the handler
// runs. Pre-flight requests pass through untouched.
func gateMiddleware(appService authz.Service, resourcePrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		resource := resourcePrefix + "/" + c.Request.Method + c.Request.URL.Path
		decision := appService.Check(c.Request.Context(), c.GetHeader("Authorization"), resource)
		if !decision.Allowed() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "User is not authorized to access this resource",
			})
			return
		}

		c.Set(authorizerContextKey, decision.Context)
		c.Next()
	}
}

// chiCORSMiddleware runs go-chi/cors in front of gin handlers. A request the
// cors handler answers itself (pre-flight) never reaches the chain.
func chiCORSMiddleware(opts cors.Options) gin.HandlerFunc {
	handler := cors.New(opts)
	return func(c *gin.Context) {
		passed := false
		handler.Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
			return
		}
		c.Next()
	}
}
