package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/wholesale/backend/internal/application/catalog"
	"github.com/wholesale/backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles catalog endpoints.
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(base BaseHandler, catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

// Create handles POST /catalogs
func (h *CatalogHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cat, err := h.catalogService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cat)
}

// List handles GET /catalogs (admin view, every catalog)
func (h *CatalogHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	catalogs, err := h.catalogService.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogs)
}

// ListMine handles GET /my/catalogs. Only catalogs the authenticated
// retailer's tiers grant access to are returned.
func (h *CatalogHandler) ListMine(c *gin.Context) {
	retailerID, ok := h.retailerFromToken(c)
	if !ok {
		return
	}

	catalogs, err := h.catalogService.ListForRetailer(c.Request.Context(), retailerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogs)
}

// Get handles GET /catalogs/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	cat, err := h.catalogService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cat)
}

// Update handles PUT /catalogs/:id
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cat, err := h.catalogService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cat)
}

// Activate handles POST /catalogs/:id/activate
func (h *CatalogHandler) Activate(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}
	if err := h.catalogService.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /catalogs/:id/deactivate
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindUUIDParam(c)
	if !ok {
		return
	}
	if err := h.catalogService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// retailerFromToken resolves the retailer ID carried by the bearer
// token, writing the error response itself when it is missing.
func (h *BaseHandler) retailerFromToken(c *gin.Context) (uuid.UUID, bool) {
	raw := middleware.GetRetailerID(c)
	if raw == "" {
		h.BadRequest(c, "Token does not identify a retailer")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Token carries a malformed retailer ID")
		return uuid.Nil, false
	}
	return id, true
}
