package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/wholesale/backend/internal/application/partner"
)

// SyncHandler exposes the directory sheet sync.
type SyncHandler struct {
	BaseHandler
	syncService *partnerapp.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(base BaseHandler, syncService *partnerapp.SyncService) *SyncHandler {
	return &SyncHandler{
		BaseHandler: base,
		syncService: syncService,
	}
}

// Run handles POST /sync/retailers. The report is returned even when
// individual tiers or rows failed; only a wholly unreachable source is
// an error.
func (h *SyncHandler) Run(c *gin.Context) {
	report, err := h.syncService.Sync(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
