package handlers

import (
	"net/http"

	"royalcert/internal/middleware"
	"royalcert/internal/models"
	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	S service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler { return &UserHandler{S: s} }

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.S.List(c.Request.Context(), models.UserRole(c.Query("role")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	var in service.UpdateUserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.S.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type passwordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.S.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	message(c, "Şifre güncellendi")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.S.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	message(c, "Kullanıcı silindi")
}
