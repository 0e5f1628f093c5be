package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/controller"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/auth"
)

// RegisterAuthRoutes registra as rotas de autenticação e usuários
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController, jwtService *auth.JWTService) {
	routes := r.Group("/auth")
	{
		routes.POST("/login", authController.Login)

		authenticated := routes.Group("")
		authenticated.Use(auth.JWTAuthMiddleware(jwtService))
		{
			authenticated.GET("/me", authController.Me)
			authenticated.GET("/verificar", authController.Verify)

			admin := authenticated.Group("")
			admin.Use(auth.Authorize(user.RoleAdmin))
			{
				admin.POST("/registro", authController.Register)
				admin.GET("/usuarios", authController.List)
				admin.PUT("/usuarios/:id", authController.Update)
			}
		}
	}
}
