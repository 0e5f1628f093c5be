package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/controller"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/auth"
)

// RegisterTransactionRoutes registra as rotas do módulo financeiro
func RegisterTransactionRoutes(r *gin.RouterGroup, transactionController *controller.TransactionController, jwtService *auth.JWTService) {
	finance := r.Group("/financeiro")
	finance.Use(auth.JWTAuthMiddleware(jwtService))
	finance.Use(auth.Authorize(user.RoleAdmin, user.RoleManager))
	{
		finance.POST("", transactionController.Create)
		finance.GET("", transactionController.List)
		finance.GET("/:id", transactionController.Get)
		finance.POST("/:id/pagamento", transactionController.Pay)
		finance.PATCH("/:id/cancelar", transactionController.Cancel)
		finance.GET("/relatorios/balanco", transactionController.Balance)
		finance.GET("/relatorios/categorias", transactionController.Breakdown)
	}
}
