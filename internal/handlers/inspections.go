package handlers

import (
	"net/http"

	"royalcert/internal/middleware"
	"royalcert/internal/models"
	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
)

type InspectionHandler struct {
	S service.InspectionService
}

func NewInspectionHandler(s service.InspectionService) *InspectionHandler {
	return &InspectionHandler{S: s}
}

func (h *InspectionHandler) Create(c *gin.Context) {
	var in service.CreateInspectionInput
	if !bindJSON(c, &in) {
		return
	}
	insp, err := h.S.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insp)
}

func (h *InspectionHandler) List(c *gin.Context) {
	f := service.InspectionListFilter{
		Status:     models.InspectionStatus(c.Query("status")),
		CustomerID: c.Query("customer_id"),
	}
	list, err := h.S.List(c.Request.Context(), middleware.CurrentUser(c), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InspectionHandler) PendingApproval(c *gin.Context) {
	list, err := h.S.PendingApproval(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InspectionHandler) Get(c *gin.Context) {
	insp, err := h.S.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, insp)
}

func (h *InspectionHandler) Update(c *gin.Context) {
	var in service.UpdateInspectionInput
	if !bindJSON(c, &in) {
		return
	}
	insp, err := h.S.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, insp)
}

func (h *InspectionHandler) Delete(c *gin.Context) {
	if err := h.S.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	message(c, "Denetim silindi")
}

func (h *InspectionHandler) History(c *gin.Context) {
	logs, err := h.S.History(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *InspectionHandler) Approve(c *gin.Context) {
	var in service.ApprovalInput
	if !bindJSON(c, &in) {
		return
	}
	insp, err := h.S.Approve(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, insp)
}

func (h *InspectionHandler) Form(c *gin.Context) {
	view, err := h.S.Form(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *InspectionHandler) SaveForm(c *gin.Context) {
	var in service.FormInput
	if !bindJSON(c, &in) {
		return
	}
	insp, err := h.S.SaveForm(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}

	msg := "Rapor onaya gönderildi"
	if in.IsDraft {
		msg = "Form taslak olarak kaydedildi"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":               msg,
		"status":                insp.Status,
		"completion_percentage": insp.CompletionPercentage,
		"inspection":            insp,
	})
}
