package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/terrasapp/sales-api/internal/interface/http"
	"github.com/terrasapp/sales-api/internal/interface/middleware"
	"github.com/terrasapp/sales-api/pkg/helpers"
)

// UserModule wires user HTTP handlers and JWT middleware into routes
// Public: POST /api/users, POST /api/users/login, POST /api/users/recovery
// Everything else under /api/users requires a valid token

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "Rota raiz da API Terras App")
	})

	users := rg.Group("/users")

	// Public with rate limiting on the credential endpoints
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath())
	recoveryLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath())

	users.POST("", m.Handler.Create)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/recovery", recoveryLimiter, m.Handler.RecoverPassword)

	// Protected
	auth := users.Group("")
	auth.Use(middleware.VerifyToken(m.JWT))
	{
		auth.GET("", m.Handler.Search)
		auth.GET("/tasks/count", m.Handler.Count)
		auth.GET("/:id", m.Handler.FindByID)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.DELETE("", m.Handler.DeleteAll)
	}
}
