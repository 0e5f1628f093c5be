package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/dto"
	saledomain "github.com/rmacedo/gestor-pme/internal/domain/sale"
	"github.com/rmacedo/gestor-pme/internal/service"
	"github.com/rmacedo/gestor-pme/pkg/auth"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	saleService *service.SaleService
	logger      logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(saleService *service.SaleService, logger logger.Logger) *SaleController {
	return &SaleController{
		saleService: saleService,
		logger:      logger,
	}
}

// actor extrai o usuário autenticado do contexto
func (c *SaleController) actor(ctx *gin.Context) service.Actor {
	id, _, role := auth.CurrentUser(ctx)
	return service.Actor{ID: id, Role: role}
}

// Create registra uma nova venda
// @Summary Criar venda
// @Description Registra uma nova venda pendente com verificação de estoque
// @Tags vendas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /vendas [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	input := service.CreateSaleInput{
		CustomerID:   req.CustomerID,
		Items:        req.DomainItems(),
		Payment:      req.DomainPayment(),
		Observations: req.Observations,
		DeliveryDate: req.DeliveryDate,
	}

	s, err := c.saleService.Create(ctx, c.actor(ctx), input)
	if err != nil {
		c.logger.Error("erro ao registrar venda", "error", err)
		respondError(ctx, "erro ao registrar venda", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("venda registrada com sucesso", dto.ToSaleResponse(s)))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Description Retorna os dados de uma venda pelo ID
// @Tags vendas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /vendas/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, err := c.saleService.FindByID(ctx, c.actor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToSaleResponse(s)))
}

// List lista as vendas com filtros e paginação
// @Summary Listar vendas
// @Description Lista as vendas com filtros e paginação. Vendedores só enxergam as próprias vendas.
// @Tags vendas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Param status query string false "Status da venda"
// @Param vendedor query string false "ID do vendedor"
// @Param inicio query string false "Data inicial (YYYY-MM-DD)"
// @Param fim query string false "Data final (YYYY-MM-DD)"
// @Success 200 {object} dto.SuccessResponse
// @Router /vendas [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	filter := saledomain.ListFilter{
		Status:     saledomain.Status(ctx.Query("status")),
		SalesmanID: ctx.Query("vendedor"),
	}
	if from := ctx.Query("inicio"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := ctx.Query("fim"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.CreatedTo = &t
		}
	}

	sales, total, err := c.saleService.List(ctx, c.actor(ctx), filter, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar vendas", "error", err)
		respondError(ctx, "erro ao listar vendas", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(
		dto.ToSaleListResponse(sales),
		pagination.Page, pagination.PageSize, total))
}

// ChangeStatus altera o status de uma venda
// @Summary Alterar status da venda
// @Description Aplica uma transição de status validada. A aprovação efetua a baixa de estoque.
// @Tags vendas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param status body dto.SaleStatusRequest true "Novo status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /vendas/{id}/status [patch]
func (c *SaleController) ChangeStatus(ctx *gin.Context) {
	var req dto.SaleStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	s, err := c.saleService.ChangeStatus(ctx, c.actor(ctx), ctx.Param("id"), req.Status)
	if err != nil {
		c.logger.Error("erro ao alterar status da venda", "sale_id", ctx.Param("id"), "error", err)
		respondError(ctx, "erro ao alterar status da venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("status alterado com sucesso", dto.ToSaleResponse(s)))
}

// Cancel cancela uma venda
// @Summary Cancelar venda
// @Description Cancela uma venda pendente ou aprovada
// @Tags vendas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /vendas/{id}/cancelar [post]
func (c *SaleController) Cancel(ctx *gin.Context) {
	s, err := c.saleService.ChangeStatus(ctx, c.actor(ctx), ctx.Param("id"), saledomain.StatusCanceled)
	if err != nil {
		respondError(ctx, "erro ao cancelar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("venda cancelada com sucesso", dto.ToSaleResponse(s)))
}

// Report gera o relatório mensal de vendas
// @Summary Relatório de vendas
// @Description Agrupa as vendas por ano e mês com contagens por status
// @Tags vendas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param inicio query string false "Data inicial (YYYY-MM-DD)"
// @Param fim query string false "Data final (YYYY-MM-DD)"
// @Param vendedor query string false "ID do vendedor"
// @Success 200 {object} dto.SuccessResponse
// @Router /vendas/relatorios/vendas [get]
func (c *SaleController) Report(ctx *gin.Context) {
	filter := saledomain.ListFilter{
		SalesmanID: ctx.Query("vendedor"),
	}
	if from := ctx.Query("inicio"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := ctx.Query("fim"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.CreatedTo = &t
		}
	}

	rows, err := c.saleService.Report(ctx, c.actor(ctx), filter)
	if err != nil {
		c.logger.Error("erro ao gerar relatório de vendas", "error", err)
		respondError(ctx, "erro ao gerar relatório", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToSaleReportResponse(rows)))
}
