package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/wholesale/backend/internal/application/partner"
	"github.com/wholesale/backend/internal/interfaces/http/dto"
)

// RetailerHandler handles retailer directory endpoints.
type RetailerHandler struct {
	BaseHandler
	retailerService *partnerapp.RetailerService
}

// NewRetailerHandler creates a new RetailerHandler.
func NewRetailerHandler(base BaseHandler, retailerService *partnerapp.RetailerService) *RetailerHandler {
	return &RetailerHandler{
		BaseHandler:     base,
		retailerService: retailerService,
	}
}

// Create handles POST /retailers
func (h *RetailerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateRetailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	retailer, err := h.retailerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, retailer)
}

// List handles GET /retailers
func (h *RetailerHandler) List(c *gin.Context) {
	var filter partnerapp.RetailerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	retailers, total, err := h.retailerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, retailers, paginationMeta(filter.Page, filter.PageSize, total))
}

// Get handles GET /retailers/:id
func (h *RetailerHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	retailer, err := h.retailerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, retailer)
}

// GetByPhone handles GET /retailers/by-phone/:phone
func (h *RetailerHandler) GetByPhone(c *gin.Context) {
	retailer, err := h.retailerService.GetByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, retailer)
}

// Update handles PUT /retailers/:id
func (h *RetailerHandler) Update(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	var req partnerapp.UpdateRetailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	retailer, err := h.retailerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, retailer)
}

// SetPriorities handles PUT /retailers/:id/priorities
func (h *RetailerHandler) SetPriorities(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	var req partnerapp.SetPrioritiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	retailer, err := h.retailerService.SetPriorities(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, retailer)
}

// RefreshAccess handles POST /retailers/:id/refresh-access
func (h *RetailerHandler) RefreshAccess(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	retailer, err := h.retailerService.RefreshAccess(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, retailer)
}

// RefreshAllAccess handles POST /retailers/refresh-access
func (h *RetailerHandler) RefreshAllAccess(c *gin.Context) {
	count, err := h.retailerService.RefreshAllAccess(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"retailers_refreshed": count})
}

// Activate handles POST /retailers/:id/activate
func (h *RetailerHandler) Activate(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}
	if err := h.retailerService.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /retailers/:id/deactivate
func (h *RetailerHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}
	if err := h.retailerService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// paginationMeta builds response metadata from page inputs and a total.
func paginationMeta(page, pageSize int, total int64) dto.Meta {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return dto.Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
