package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/controller"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/auth"
)

// RegisterSaleRoutes registra as rotas do módulo de vendas
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController, jwtService *auth.JWTService) {
	sales := r.Group("/vendas")
	sales.Use(auth.JWTAuthMiddleware(jwtService))
	sales.Use(auth.Authorize(user.RoleAdmin, user.RoleManager, user.RoleSalesman))
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
		sales.PATCH("/:id/status", saleController.ChangeStatus)
		sales.POST("/:id/cancelar", saleController.Cancel)
		sales.GET("/relatorios/vendas", saleController.Report)
	}
}
