package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/terrasapp/sales-api/internal/interface/http"
	"github.com/terrasapp/sales-api/internal/interface/middleware"
	"github.com/terrasapp/sales-api/pkg/helpers"
)

// SaleModule registers the sales routes, every one of them token-gated.

type SaleModule struct {
	Handler *handlers.SaleHandler
	JWT     *helpers.JWTManager
}

func NewSaleModule(h *handlers.SaleHandler, jwt *helpers.JWTManager) *SaleModule {
	return &SaleModule{Handler: h, JWT: jwt}
}

func (m *SaleModule) Register(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	sales.Use(middleware.VerifyToken(m.JWT))
	{
		sales.POST("", m.Handler.Create)
		sales.POST("/import", m.Handler.Import)
		sales.GET("", m.Handler.Search)
		sales.GET("/tasks/count", m.Handler.Metrics)
		sales.GET("/:id", m.Handler.FindByID)
		sales.PUT("/:id", m.Handler.Update)
		sales.DELETE("/:id", m.Handler.Delete)
		sales.DELETE("", m.Handler.DeleteAll)
	}
}
