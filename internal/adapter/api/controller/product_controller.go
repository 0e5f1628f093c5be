package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/dto"
	productdomain "github.com/rmacedo/gestor-pme/internal/domain/product"
	"github.com/rmacedo/gestor-pme/pkg/auth"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// ProductController gerencia as requisições relacionadas a produtos e estoque
type ProductController struct {
	productRepo productdomain.Repository
	logger      logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(productRepo productdomain.Repository, logger logger.Logger) *ProductController {
	return &ProductController{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create cria um novo produto
// @Summary Criar produto
// @Description Cria um novo produto no estoque
// @Tags estoque
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /estoque [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	p, err := productdomain.NewProduct(
		req.Code,
		req.Name,
		req.Category,
		req.Unit,
		req.PurchasePrice,
		req.SalePrice,
		req.MinStock,
		req.MaxStock,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("erro ao criar produto", err.Error()))
		return
	}

	p.Description = req.Description
	p.Supplier = req.Supplier.Supplier()

	if req.Quantity > 0 {
		userID, _, _ := auth.CurrentUser(ctx)
		if err := p.ApplyMovement(productdomain.MovementIn, req.Quantity, userID, "Estoque inicial"); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("quantidade inicial inválida", err.Error()))
			return
		}
	}

	if err := c.productRepo.Create(ctx, p); err != nil {
		c.logger.Error("erro ao salvar produto", "error", err)
		respondError(ctx, "erro ao salvar produto", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("produto criado com sucesso", dto.ToProductResponse(p)))
}

// Get retorna um produto pelo ID
// @Summary Buscar produto
// @Description Retorna os dados de um produto pelo ID
// @Tags estoque
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /estoque/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.productRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToProductResponse(p)))
}

// List lista os produtos com filtros e paginação
// @Summary Listar produtos
// @Description Lista os produtos com filtros e paginação
// @Tags estoque
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Param categoria query string false "Categoria"
// @Param status query string false "Status do produto"
// @Param busca query string false "Busca por nome ou código"
// @Success 200 {object} dto.SuccessResponse
// @Router /estoque [get]
func (c *ProductController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	filter := productdomain.ListFilter{
		Category: ctx.Query("categoria"),
		Status:   productdomain.Status(ctx.Query("status")),
		Search:   ctx.Query("busca"),
	}

	products, err := c.productRepo.List(ctx, filter, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar produtos", "error", err)
		respondError(ctx, "erro ao listar produtos", err)
		return
	}

	total, err := c.productRepo.Count(ctx, filter)
	if err != nil {
		respondError(ctx, "erro ao contar produtos", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(
		dto.ToProductListResponse(products),
		pagination.Page, pagination.PageSize, total))
}

// Update atualiza um produto
// @Summary Atualizar produto
// @Description Atualiza os dados cadastrais de um produto. A quantidade em
// estoque só muda por movimentação.
// @Tags estoque
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param product body dto.ProductUpdateRequest true "Dados do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /estoque/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	p, err := c.productRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar produto", err)
		return
	}

	err = p.Update(
		req.Name,
		req.Description,
		req.Category,
		req.Unit,
		req.PurchasePrice,
		req.SalePrice,
		req.MinStock,
		req.MaxStock,
		req.Supplier.Supplier(),
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("erro ao atualizar produto", err.Error()))
		return
	}

	if err := c.productRepo.Update(ctx, p); err != nil {
		c.logger.Error("erro ao atualizar produto", "product_id", p.ID, "error", err)
		respondError(ctx, "erro ao atualizar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("produto atualizado com sucesso", dto.ToProductResponse(p)))
}

// Deactivate desativa um produto
// @Summary Desativar produto
// @Description Desativa um produto sem removê-lo do histórico
// @Tags estoque
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /estoque/{id} [delete]
func (c *ProductController) Deactivate(ctx *gin.Context) {
	p, err := c.productRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar produto", err)
		return
	}

	p.Deactivate()

	if err := c.productRepo.Update(ctx, p); err != nil {
		respondError(ctx, "erro ao desativar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("produto desativado com sucesso", nil))
}

// Move registra uma movimentação de estoque
// @Summary Movimentar estoque
// @Description Registra uma entrada ou saída de estoque de um produto
// @Tags estoque
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param movement body dto.MovementRequest true "Dados da movimentação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /estoque/{id}/movimentacao [post]
func (c *ProductController) Move(ctx *gin.Context) {
	var req dto.MovementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	p, err := c.productRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar produto", err)
		return
	}

	userID, _, _ := auth.CurrentUser(ctx)
	if err := p.ApplyMovement(req.Type, req.Quantity, userID, req.Note); err != nil {
		if err == productdomain.ErrInsufficientStock {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("estoque insuficiente", err.Error()))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("movimentação inválida", err.Error()))
		return
	}

	if err := c.productRepo.Update(ctx, p); err != nil {
		c.logger.Error("erro ao salvar movimentação", "product_id", p.ID, "error", err)
		respondError(ctx, "erro ao salvar movimentação", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("movimentação registrada com sucesso", dto.ToProductResponse(p)))
}

// Movements retorna o histórico de movimentações de um produto
// @Summary Histórico de movimentações
// @Description Retorna o histórico de movimentações de estoque de um produto
// @Tags estoque
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /estoque/{id}/movimentacoes [get]
func (c *ProductController) Movements(ctx *gin.Context) {
	p, err := c.productRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToMovementListResponse(p.Movements)))
}

// BelowMinimum lista os produtos com estoque abaixo do mínimo
// @Summary Produtos com estoque baixo
// @Description Lista os produtos com quantidade igual ou abaixo do estoque mínimo
// @Tags estoque
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SuccessResponse
// @Router /estoque/relatorios/estoque-baixo [get]
func (c *ProductController) BelowMinimum(ctx *gin.Context) {
	products, err := c.productRepo.FindBelowMinimum(ctx)
	if err != nil {
		c.logger.Error("erro ao listar produtos abaixo do mínimo", "error", err)
		respondError(ctx, "erro ao listar produtos abaixo do mínimo", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToProductListResponse(products)))
}
