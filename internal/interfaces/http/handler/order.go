package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderingapp "github.com/wholesale/backend/internal/application/ordering"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order workflow endpoints.
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(base BaseHandler, orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

// Create handles POST /orders. Retailer tokens always order for
// themselves, whatever the body says.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderingapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if retailerID, scoped := tokenRetailer(c); scoped {
		req.RetailerID = retailerID
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List handles GET /orders. Retailer tokens only see their own orders.
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	if retailerID, scoped := tokenRetailer(c); scoped {
		filter.RetailerID = retailerID
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, paginationMeta(filter.Page, filter.PageSize, total))
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.authorizeOrderAccess(c, order.RetailerID) {
		return
	}
	h.Success(c, order)
}

// GetByNumber handles GET /orders/by-number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.authorizeOrderAccess(c, order.RetailerID) {
		return
	}
	h.Success(c, order)
}

// Submit handles POST /orders/:id/submit
func (h *OrderHandler) Submit(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	existing, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.authorizeOrderAccess(c, existing.RetailerID) {
		return
	}

	order, err := h.orderService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// StartReview handles POST /orders/:id/start-review (admin)
func (h *OrderHandler) StartReview(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.StartReview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Review handles POST /orders/:id/review (admin). Size edits in the
// body are committed together with the decision.
func (h *OrderHandler) Review(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	var req orderingapp.ReviewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if req.ReviewedBy == "" {
		req.ReviewedBy = middleware.GetUserID(c)
	}

	order, err := h.orderService.Review(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /orders/:id (admin)
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// authorizeOrderAccess rejects retailer tokens reading another
// retailer's order. Admin tokens pass through.
func (h *BaseHandler) authorizeOrderAccess(c *gin.Context, owner uuid.UUID) bool {
	retailerID, scoped := tokenRetailer(c)
	if scoped && retailerID != owner {
		h.HandleError(c, shared.ErrForbidden)
		return false
	}
	return true
}

// tokenRetailer returns the retailer the token is scoped to. Admin
// tokens are unscoped.
func tokenRetailer(c *gin.Context) (uuid.UUID, bool) {
	raw := middleware.GetRetailerID(c)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
