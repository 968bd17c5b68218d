package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"proshop/config"
	"proshop/models"
)

// RecoveryMiddleware converts panics into a 500 with a {message, stack?}
// body. The stack is omitted in production.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		resp := models.ErrorResponse{
			Message: fmt.Sprintf("%v", recovered),
		}
		if config.AppConfig.AppEnv != "production" {
			resp.Stack = string(debug.Stack())
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}
