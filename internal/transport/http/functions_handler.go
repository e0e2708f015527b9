package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/WilsonSunBritten/serverless-tools/internal/app/registry"
	registrydomain "github.com/WilsonSunBritten/serverless-tools/internal/domain/registry"
	"github.com/WilsonSunBritten/serverless-tools/pkg/logger"
	"github.com/WilsonSunBritten/serverless-tools/pkg/tracer"
)

const sampleMessage = "Hello from Sample Function!"

type FunctionsHandler struct {
	registryService registry.Service
	now             func() time.Time
}

func NewFunctionsHandler(registryService registry.Service, now func() time.Time) *FunctionsHandler {
	if now == nil {
		now = time.Now
	}
	return &FunctionsHandler{
		registryService: registryService,
		now:             now,
	}
}

func (h *FunctionsHandler) ListFunctions(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.ListFunctions")
	defer span.End()

	functions, err := h.registryService.ListFunctions(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list functions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, functions)
}

func (h *FunctionsHandler) RegisterFunction(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "transport.http.RegisterFunction")
	defer span.End()

	var descriptor registrydomain.FunctionDescriptor
	if err := c.ShouldBindJSON(&descriptor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.registryService.RegisterFunction(ctx, descriptor); err != nil {
		if errors.Is(err, registrydomain.ErrInvalidDescriptor) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.ErrorContext(ctx, "failed to register function", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": registrydomain.RegisteredMessage})
}

type sampleResponse struct {
	Message   string    `json:"Message"`
	Timestamp time.Time `json:"Timestamp"`
}

func (h *FunctionsHandler) SampleEndpoint(c *gin.Context) {
	c.JSON(http.StatusOK, sampleResponse{
		Message:   sampleMessage,
		Timestamp: h.now().UTC(),
	})
}
