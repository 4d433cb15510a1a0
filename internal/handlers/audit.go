package handlers

import (
	"net/http"

	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	S service.AuditService
}

func NewAuditHandler(s service.AuditService) *AuditHandler { return &AuditHandler{S: s} }

// List shows the newest audit rows, optionally for one entity kind.
func (h *AuditHandler) List(c *gin.Context) {
	logs, err := h.S.List(c.Request.Context(), c.Query("entity"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
