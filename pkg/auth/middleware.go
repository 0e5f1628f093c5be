package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/dto"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
)

// JWTAuthMiddleware cria um middleware para autenticação JWT
func JWTAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				"Autenticação requerida",
				"o cabeçalho Authorization não foi fornecido",
			))
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				"Formato de token inválido",
				"use o formato 'Bearer <token>'",
			))
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Token inválido"
			if err == ErrExpiredToken {
				message = "Token expirado"
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				message,
				err.Error(),
			))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// Authorize cria um middleware que restringe o acesso aos cargos informados
func Authorize(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoleVal, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				"Autenticação requerida",
				"",
			))
			return
		}

		userRole, _ := userRoleVal.(string)

		authorized := false
		for _, r := range roles {
			if userRole == string(r) {
				authorized = true
				break
			}
		}

		if !authorized {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				"Acesso negado",
				"você não tem permissão para acessar este recurso",
			))
			return
		}

		c.Next()
	}
}

// CurrentUser obtém o ID, nome e cargo do usuário autenticado no contexto
func CurrentUser(c *gin.Context) (id string, name string, role user.Role) {
	idVal, _ := c.Get("user_id")
	nameVal, _ := c.Get("user_name")
	roleVal, _ := c.Get("user_role")

	id, _ = idVal.(string)
	name, _ = nameVal.(string)
	roleStr, _ := roleVal.(string)

	return id, name, user.Role(roleStr)
}
