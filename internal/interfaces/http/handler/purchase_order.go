package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/wholesale/backend/internal/application/ordering"
	"github.com/wholesale/backend/internal/interfaces/http/middleware"
)

// PurchaseOrderHandler handles purchase order endpoints.
type PurchaseOrderHandler struct {
	BaseHandler
	poService *orderingapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(base BaseHandler, poService *orderingapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		BaseHandler: base,
		poService:   poService,
	}
}

// Generate handles POST /orders/:id/purchase-order. Generation is
// idempotent; repeating the call returns the existing document.
func (h *PurchaseOrderHandler) Generate(c *gin.Context) {
	orderID, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	var req orderingapp.GeneratePORequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}
	if req.GeneratedBy == "" {
		req.GeneratedBy = middleware.GetUserID(c)
	}

	po, err := h.poService.Generate(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, po)
}

// List handles GET /purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter orderingapp.POListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	pos, total, err := h.poService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, pos, paginationMeta(filter.Page, filter.PageSize, total))
}

// Get handles GET /purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	po, err := h.poService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// GetByOrder handles GET /orders/:id/purchase-order
func (h *PurchaseOrderHandler) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}

	po, err := h.poService.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// MarkSent handles POST /purchase-orders/:id/sent
func (h *PurchaseOrderHandler) MarkSent(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	po, err := h.poService.MarkSent(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// MarkAcknowledged handles POST /purchase-orders/:id/acknowledged
func (h *PurchaseOrderHandler) MarkAcknowledged(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	po, err := h.poService.MarkAcknowledged(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// Document handles GET /purchase-orders/:id/document. Returns the
// payload the external renderer turns into the printable document.
func (h *PurchaseOrderHandler) Document(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	doc, err := h.poService.DocumentData(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}
