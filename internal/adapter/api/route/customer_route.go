package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/controller"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/auth"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, jwtService *auth.JWTService) {
	customers := r.Group("/clientes")
	customers.Use(auth.JWTAuthMiddleware(jwtService))
	{
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
		customers.GET("/:id/credito", customerController.VerifyCredit)

		sellers := customers.Group("")
		sellers.Use(auth.Authorize(user.RoleAdmin, user.RoleManager, user.RoleSalesman))
		{
			sellers.POST("", customerController.Create)
			sellers.PUT("/:id", customerController.Update)
		}

		managers := customers.Group("")
		managers.Use(auth.Authorize(user.RoleAdmin, user.RoleManager))
		{
			managers.PATCH("/:id/status", customerController.UpdateStatus)
			managers.PUT("/:id/credito", customerController.SetCreditLimit)
			managers.POST("/:id/credito/liberacao", customerController.ReleaseCredit)
			managers.POST("/:id/compras", customerController.RegisterPurchase)
			managers.GET("/relatorios/clientes", customerController.Report)
		}
	}
}
