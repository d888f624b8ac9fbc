package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/interfaces/http/dto"
	"github.com/wholesale/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func performRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"piece floor", shared.NewDomainError("VALIDATION_FAILED", "Item KRT-101 needs at least 10 pieces"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"duplicate tier", shared.NewDomainError("PRIORITY_EXISTS", "Priority R1 already exists"), http.StatusConflict, "PRIORITY_EXISTS"},
		{"sheet down", shared.ErrExternalSource, http.StatusBadGateway, "EXTERNAL_SOURCE_ERROR"},
		{"opaque error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := NewBaseHandler(zap.NewNop())
			engine := gin.New()
			engine.GET("/boom", func(c *gin.Context) {
				base.HandleError(c, tt.err)
			})

			w := performRequest(engine, http.MethodGet, "/boom", "")
			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleError_IncludesRequestID(t *testing.T) {
	base := NewBaseHandler(zap.NewNop())
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/boom", func(c *gin.Context) {
		base.HandleError(c, shared.ErrNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-42", resp.Error.RequestID)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestBindingError_ValidationDetails(t *testing.T) {
	type createRequest struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"omitempty,email"`
	}

	base := NewBaseHandler(zap.NewNop())
	engine := gin.New()
	engine.POST("/things", func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			base.BindingError(c, err)
			return
		}
		base.Created(c, req)
	})

	w := performRequest(engine, http.MethodPost, "/things", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)

	fields := make([]string, 0, len(resp.Error.Details))
	for _, d := range resp.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}

func TestBindUUIDParam(t *testing.T) {
	base := NewBaseHandler(zap.NewNop())
	engine := gin.New()
	engine.GET("/things/:id", func(c *gin.Context) {
		id, ok := base.bindUUIDParam(c)
		if !ok {
			return
		}
		base.Success(c, gin.H{"id": id.String()})
	})

	w := performRequest(engine, http.MethodGet, "/things/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(engine, http.MethodGet, "/things/0d4cfc03-7f70-4b07-9108-7d5a29b2374f", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
