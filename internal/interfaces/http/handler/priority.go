package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/wholesale/backend/internal/application/partner"
)

// PriorityHandler handles priority tier endpoints.
type PriorityHandler struct {
	BaseHandler
	priorityService *partnerapp.PriorityService
}

// NewPriorityHandler creates a new PriorityHandler.
func NewPriorityHandler(base BaseHandler, priorityService *partnerapp.PriorityService) *PriorityHandler {
	return &PriorityHandler{
		BaseHandler:     base,
		priorityService: priorityService,
	}
}

// Create handles POST /priorities
func (h *PriorityHandler) Create(c *gin.Context) {
	var req partnerapp.CreatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	priority, err := h.priorityService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, priority)
}

// List handles GET /priorities
func (h *PriorityHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	priorities, err := h.priorityService.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, priorities)
}

// Get handles GET /priorities/:code
func (h *PriorityHandler) Get(c *gin.Context) {
	priority, err := h.priorityService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, priority)
}

// Update handles PUT /priorities/:code
func (h *PriorityHandler) Update(c *gin.Context) {
	var req partnerapp.UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	priority, err := h.priorityService.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, priority)
}

// Activate handles POST /priorities/:code/activate
func (h *PriorityHandler) Activate(c *gin.Context) {
	if err := h.priorityService.Activate(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove handles DELETE /priorities/:code. Retailers still holding the
// tier are reassigned or dropped per the request body.
func (h *PriorityHandler) Remove(c *gin.Context) {
	var req partnerapp.RemovePriorityRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	result, err := h.priorityService.Remove(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
