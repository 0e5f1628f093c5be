package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/controller"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/auth"
)

// RegisterProductRoutes registra as rotas do módulo de estoque
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController, jwtService *auth.JWTService) {
	products := r.Group("/estoque")
	products.Use(auth.JWTAuthMiddleware(jwtService))
	{
		products.GET("", productController.List)
		products.GET("/:id", productController.Get)
		products.GET("/:id/movimentacoes", productController.Movements)

		stock := products.Group("")
		stock.Use(auth.Authorize(user.RoleAdmin, user.RoleManager, user.RoleStock))
		{
			stock.POST("", productController.Create)
			stock.PUT("/:id", productController.Update)
			stock.DELETE("/:id", productController.Deactivate)
			stock.POST("/:id/movimentacao", productController.Move)
			stock.GET("/relatorios/estoque-baixo", productController.BelowMinimum)
		}
	}
}
