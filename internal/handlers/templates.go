package handlers

import (
	"net/http"
	"strconv"

	"royalcert/internal/middleware"
	"royalcert/internal/models"
	"royalcert/internal/repository"
	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	S service.TemplateService
}

func NewTemplateHandler(s service.TemplateService) *TemplateHandler { return &TemplateHandler{S: s} }

func (h *TemplateHandler) Create(c *gin.Context) {
	var in service.TemplateInput
	if !bindJSON(c, &in) {
		return
	}
	tpl, err := h.S.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *TemplateHandler) List(c *gin.Context) {
	f := repository.TemplateFilter{
		EquipmentType: c.Query("equipment_type"),
		TemplateType:  models.TemplateType(c.Query("template_type")),
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "active true veya false olmalıdır"})
			return
		}
		f.Active = &active
	}

	templates, err := h.S.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.S.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	var in service.TemplateInput
	if !bindJSON(c, &in) {
		return
	}
	tpl, err := h.S.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.S.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	message(c, "Template silindi")
}

func (h *TemplateHandler) Initialize(c *gin.Context) {
	res, err := h.S.Initialize(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
