package handlers

import (
	"net/http"
	"strings"

	"royalcert/internal/logging"
	"royalcert/internal/middleware"
	"royalcert/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Auth  service.AuthService
	Users service.UserService
}

func NewAuthHandler(auth service.AuthService, users service.UserService) *AuthHandler {
	return &AuthHandler{Auth: auth, Users: users}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserKey, res.User.ID)
	saveSession(c, sess)

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	saveSession(c, sess)
	message(c, "Çıkış yapıldı")
}

// Register creates a user account; the route is admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var in service.CreateUserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.Users.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// saveSession writes the session cookie and logs a failed write.
func saveSession(c *gin.Context, sess sessions.Session) {
	if err := sess.Save(); err != nil {
		logging.Log.Warn("session save failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
}
