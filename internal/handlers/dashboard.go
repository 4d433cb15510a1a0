package handlers

import (
	"net/http"

	"royalcert/internal/middleware"
	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	S service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{S: s}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.S.Stats(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
