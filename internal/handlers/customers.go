package handlers

import (
	"net/http"

	"royalcert/internal/middleware"
	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	S service.CustomerService
}

func NewCustomerHandler(s service.CustomerService) *CustomerHandler { return &CustomerHandler{S: s} }

func (h *CustomerHandler) Create(c *gin.Context) {
	var in service.CustomerInput
	if !bindJSON(c, &in) {
		return
	}
	customer, err := h.S.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.S.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.S.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var in service.CustomerInput
	if !bindJSON(c, &in) {
		return
	}
	customer, err := h.S.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.S.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	message(c, "Müşteri silindi")
}

func (h *CustomerHandler) ImportTemplate(c *gin.Context) {
	tpl, err := h.S.ImportTemplate(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}
