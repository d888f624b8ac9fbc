package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/interfaces/http/dto"
	"github.com/wholesale/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler carries the response helpers every handler embeds.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler with the given logger.
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Success writes a 200 envelope.
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 envelope with pagination metadata.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created writes a 201 envelope.
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 with an empty body.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 envelope with the given message.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidInput, message, requestID))
}

// BindingError writes a 400 envelope for a failed request binding,
// including per-field details when the failure came from validation.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := middleware.FormatValidationErrors(validationErrors)
		c.JSON(http.StatusBadRequest,
			dto.NewValidationErrorResponse("Request validation failed", requestID, details))
		return
	}

	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidInput, "Malformed request: "+err.Error(), requestID))
}

// HandleError maps domain errors to HTTP responses. Anything that is
// not a DomainError is logged and returned as a 500 without detail.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError && h.logger != nil {
			h.logger.Error("Domain error mapped to server error",
				zap.String("code", domainErr.Code),
				zap.String("request_id", requestID),
				zap.Error(err))
		}
		c.JSON(status, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	if h.logger != nil {
		h.logger.Error("Unhandled error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An internal error occurred", requestID))
}

// bindUUIDParam parses the :id path parameter, writing the 400
// response itself on failure.
func (h *BaseHandler) bindUUIDParam(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BindingError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
