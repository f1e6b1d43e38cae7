package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/terrasapp/sales-api/pkg/helpers"
)

const CtxUserIDKey = "userID"

// VerifyToken reads the Authorization header ("Bearer <token>"), validates it,
// and injects the user ID into the context. The response bodies here predate
// the uniform envelope and keep their legacy shape.
func VerifyToken(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"auth":    false,
				"message": "Acesso não autorizado.",
			})
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"auth":    false,
				"message": "Falha ao validar o token.",
			})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	// Also accept a bare token for backwards compatibility with older clients.
	if len(parts) == 1 && parts[0] != "" {
		return parts[0]
	}
	return ""
}
