package handlers

import (
	"errors"
	"net/http"

	"royalcert/internal/logging"
	"royalcert/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgBadRequest = "Geçersiz istek gövdesi"

var statusByError = map[service.Error]int{
	service.ErrUnauthorized:       http.StatusUnauthorized,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrForbidden:          http.StatusForbidden,
	service.ErrUserNotFound:       http.StatusNotFound,
	service.ErrCustomerNotFound:   http.StatusNotFound,
	service.ErrTemplateNotFound:   http.StatusNotFound,
	service.ErrInspectionNotFound: http.StatusNotFound,
}

// writeError maps service errors onto {"detail": ...} responses. Anything
// unknown is logged and reported as a 500.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		body := gin.H{"detail": verr.Message}
		if len(verr.Details) > 0 {
			body["details"] = verr.Details
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, body)
		return
	}

	var svcErr service.Error
	if errors.As(err, &svcErr) {
		status, ok := statusByError[svcErr]
		if !ok {
			status = http.StatusBadRequest
		}
		c.AbortWithStatusJSON(status, gin.H{"detail": svcErr.Error()})
		return
	}

	_ = c.Error(err)
	logging.Log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Sunucu hatası"})
}

// bindJSON decodes the body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": msgBadRequest})
		return false
	}
	return true
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
