package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/schedulo-api/internal/middleware"
	"github.com/noah-isme/schedulo-api/internal/models"
)

// requesterFields describes the authenticated caller for audit-style log lines.
func requesterFields(c *gin.Context) []zap.Field {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return []zap.Field{zap.String("user_id", "anonymous")}
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok || claims == nil {
		return []zap.Field{zap.String("user_id", "anonymous")}
	}
	return []zap.Field{zap.String("user_id", claims.UserID), zap.String("role", string(claims.Role))}
}
