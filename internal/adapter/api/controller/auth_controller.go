package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/dto"
	userdomain "github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/auth"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// AuthController gerencia autenticação e cadastro de usuários
type AuthController struct {
	userRepo   userdomain.Repository
	jwtService *auth.JWTService
	logger     logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepo userdomain.Repository, jwtService *auth.JWTService, logger logger.Logger) *AuthController {
	return &AuthController{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login autentica um usuário
// @Summary Login
// @Description Autentica um usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil || !u.Active || !u.CheckPassword(req.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("credenciais inválidas", ""))
		return
	}

	token, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("erro ao gerar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse("erro ao gerar token", err.Error()))
		return
	}

	if err := c.userRepo.UpdateLastAccess(ctx, u.ID); err != nil {
		c.logger.Warn("erro ao registrar último acesso", "user_id", u.ID, "error", err)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("login realizado com sucesso", dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(u),
	}))
}

// Register cadastra um novo usuário
// @Summary Cadastrar usuário
// @Description Cadastra um novo usuário no sistema
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param user body dto.RegisterRequest true "Dados do usuário"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/registro [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	u, err := userdomain.NewUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("erro ao criar usuário", err.Error()))
		return
	}

	if err := c.userRepo.Create(ctx, u); err != nil {
		c.logger.Error("erro ao salvar usuário", "error", err)
		respondError(ctx, "erro ao salvar usuário", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("usuário cadastrado com sucesso", dto.ToUserResponse(u)))
}

// Me retorna os dados do usuário autenticado
// @Summary Usuário atual
// @Description Retorna os dados do usuário autenticado
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	id, _, _ := auth.CurrentUser(ctx)

	u, err := c.userRepo.FindByID(ctx, id)
	if err != nil {
		respondError(ctx, "erro ao buscar usuário", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToUserResponse(u)))
}

// Verify confirma a validade do token apresentado
// @Summary Verificar token
// @Description Confirma a validade do token e retorna a identidade do portador
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/verificar [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	id, name, role := auth.CurrentUser(ctx)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.TokenVerifyResponse{
		Valid:  true,
		UserID: id,
		Name:   name,
		Role:   role,
	}))
}

// List lista os usuários do sistema
// @Summary Listar usuários
// @Description Lista os usuários com paginação
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/usuarios [get]
func (c *AuthController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	users, err := c.userRepo.List(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar usuários", "error", err)
		respondError(ctx, "erro ao listar usuários", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToUserListResponse(users)))
}

// Update atualiza um usuário
// @Summary Atualizar usuário
// @Description Atualiza os dados de um usuário existente
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do usuário"
// @Param user body dto.UpdateUserRequest true "Dados do usuário"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/usuarios/{id} [put]
func (c *AuthController) Update(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	u, err := c.userRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar usuário", err)
		return
	}

	if !userdomain.ValidRole(req.Role) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("cargo inválido", string(req.Role)))
		return
	}

	u.Name = req.Name
	u.Email = req.Email
	u.Role = req.Role
	u.UpdatedAt = time.Now()
	if req.Active != nil {
		u.Active = *req.Active
	}
	if req.Password != "" {
		if err := u.SetPassword(req.Password); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("senha inválida", err.Error()))
			return
		}
	}

	if err := c.userRepo.Update(ctx, u); err != nil {
		c.logger.Error("erro ao atualizar usuário", "user_id", u.ID, "error", err)
		respondError(ctx, "erro ao atualizar usuário", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("usuário atualizado com sucesso", dto.ToUserResponse(u)))
}
