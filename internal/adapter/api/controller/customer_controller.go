package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/dto"
	customerdomain "github.com/rmacedo/gestor-pme/internal/domain/customer"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/auth"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente no sistema
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /clientes [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	cust, err := customerdomain.NewCustomer(
		req.PersonType,
		req.Name,
		customerdomain.Document{Type: req.DocumentType, Number: req.DocumentNumber},
		req.Contact.Contact(),
		req.Address.Address(),
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("erro ao criar cliente", err.Error()))
		return
	}

	cust.TradeName = req.TradeName
	cust.StateDocument = req.StateDocument
	cust.SalesmanID = req.SalesmanID
	cust.Observations = req.Observations
	if req.DefaultTermDays > 0 {
		cust.PaymentTerms.DefaultTermDays = req.DefaultTermDays
	}
	if req.DefaultMethod != "" {
		cust.PaymentTerms.DefaultMethod = req.DefaultMethod
	}

	if err := c.customerRepo.Create(ctx, cust); err != nil {
		c.logger.Error("erro ao salvar cliente", "error", err)
		respondError(ctx, "erro ao salvar cliente", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("cliente criado com sucesso", dto.ToCustomerResponse(cust)))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo ID
// @Tags clientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	cust, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToCustomerResponse(cust)))
}

// List lista os clientes com filtros e paginação
// @Summary Listar clientes
// @Description Lista os clientes com filtros e paginação
// @Tags clientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Param tipo query string false "Tipo de pessoa (fisica/juridica)"
// @Param status query string false "Status do cliente"
// @Param vendedor query string false "ID do vendedor"
// @Param busca query string false "Busca por nome, documento ou email"
// @Param ordenar query string false "Ordenação (nome/ultima_compra/valor_total)"
// @Success 200 {object} dto.SuccessResponse
// @Router /clientes [get]
func (c *CustomerController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	filter := customerdomain.ListFilter{
		PersonType: customerdomain.PersonType(ctx.Query("tipo")),
		Status:     customerdomain.Status(ctx.Query("status")),
		SalesmanID: ctx.Query("vendedor"),
		Search:     ctx.Query("busca"),
		OrderBy:    ctx.Query("ordenar"),
	}

	// Vendedores só enxergam a própria carteira
	if userID, _, role := auth.CurrentUser(ctx); role == user.RoleSalesman {
		filter.SalesmanID = userID
	}

	customers, err := c.customerRepo.List(ctx, filter, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar clientes", "error", err)
		respondError(ctx, "erro ao listar clientes", err)
		return
	}

	total, err := c.customerRepo.Count(ctx, filter)
	if err != nil {
		respondError(ctx, "erro ao contar clientes", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(
		dto.ToCustomerListResponse(customers),
		pagination.Page, pagination.PageSize, total))
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados cadastrais de um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerUpdateRequest true "Dados do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var req dto.CustomerUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar cliente", err)
		return
	}

	terms := cust.PaymentTerms
	if req.DefaultTermDays > 0 {
		terms.DefaultTermDays = req.DefaultTermDays
	}
	if req.DefaultMethod != "" {
		terms.DefaultMethod = req.DefaultMethod
	}

	err = cust.Update(
		req.Name,
		req.TradeName,
		req.StateDocument,
		req.Contact.Contact(),
		req.Address.Address(),
		req.SalesmanID,
		terms,
		req.Observations,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("erro ao atualizar cliente", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, cust); err != nil {
		c.logger.Error("erro ao atualizar cliente", "customer_id", cust.ID, "error", err)
		respondError(ctx, "erro ao atualizar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("cliente atualizado com sucesso", dto.ToCustomerResponse(cust)))
}

// UpdateStatus altera o status de um cliente
// @Summary Alterar status do cliente
// @Description Ativa, desativa ou bloqueia um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param status body dto.CustomerStatusRequest true "Novo status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id}/status [patch]
func (c *CustomerController) UpdateStatus(ctx *gin.Context) {
	var req dto.CustomerStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	switch req.Status {
	case customerdomain.StatusActive, customerdomain.StatusInactive, customerdomain.StatusBlocked:
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("status inválido", string(req.Status)))
		return
	}

	if err := c.customerRepo.UpdateStatus(ctx, ctx.Param("id"), req.Status); err != nil {
		respondError(ctx, "erro ao alterar status do cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("status alterado com sucesso", nil))
}

// SetCreditLimit define o limite de crédito de um cliente
// @Summary Definir limite de crédito
// @Description Define o limite de crédito concedido a um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param limit body dto.CreditLimitRequest true "Limite concedido"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id}/credito [put]
func (c *CustomerController) SetCreditLimit(ctx *gin.Context) {
	var req dto.CreditLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar cliente", err)
		return
	}

	if err := cust.SetCreditLimit(req.Granted); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("limite inválido", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, cust); err != nil {
		respondError(ctx, "erro ao salvar limite de crédito", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("limite de crédito atualizado", dto.ToCustomerResponse(cust)))
}

// VerifyCredit verifica se o cliente possui limite disponível para um valor
// @Summary Verificar limite de crédito
// @Description Verifica se o cliente possui limite disponível para o valor informado
// @Tags clientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param valor query string true "Valor a verificar"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id}/credito [get]
func (c *CustomerController) VerifyCredit(ctx *gin.Context) {
	amount, err := decimal.NewFromString(ctx.Query("valor"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("valor inválido", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.CreditCheckResponse{
		Allowed:   cust.VerifyCreditLimit(amount),
		Requested: amount,
		Available: cust.CreditLimit.Available,
	}))
}

// RegisterPurchase registra uma compra avulsa do cliente
// @Summary Registrar compra
// @Description Atualiza as métricas de compra do cliente e consome limite de crédito
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param purchase body dto.PurchaseRequest true "Valor da compra"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id}/compras [post]
func (c *CustomerController) RegisterPurchase(ctx *gin.Context) {
	var req dto.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar cliente", err)
		return
	}

	if err := cust.RegisterPurchase(req.Amount); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("valor inválido", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, cust); err != nil {
		respondError(ctx, "erro ao registrar compra", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("compra registrada com sucesso", dto.ToCustomerResponse(cust)))
}

// ReleaseCredit libera limite de crédito utilizado
// @Summary Liberar crédito
// @Description Libera limite de crédito utilizado por um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param release body dto.CreditReleaseRequest true "Valor a liberar"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clientes/{id}/credito/liberacao [post]
func (c *CustomerController) ReleaseCredit(ctx *gin.Context) {
	var req dto.CreditReleaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar cliente", err)
		return
	}

	if err := cust.ReleaseCredit(req.Amount); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("valor inválido", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, cust); err != nil {
		respondError(ctx, "erro ao salvar liberação de crédito", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("crédito liberado com sucesso", dto.ToCustomerResponse(cust)))
}

// Report gera o relatório de clientes agrupado por tipo e status
// @Summary Relatório de clientes
// @Description Agrupa os clientes por tipo de pessoa e status
// @Tags clientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param inicio query string false "Data inicial (YYYY-MM-DD)"
// @Param fim query string false "Data final (YYYY-MM-DD)"
// @Param vendedor query string false "ID do vendedor"
// @Success 200 {object} dto.SuccessResponse
// @Router /clientes/relatorios/clientes [get]
func (c *CustomerController) Report(ctx *gin.Context) {
	filter := customerdomain.ReportFilter{
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

	rows, err := c.customerRepo.Report(ctx, filter)
	if err != nil {
		c.logger.Error("erro ao gerar relatório de clientes", "error", err)
		respondError(ctx, "erro ao gerar relatório", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToCustomerReportResponse(rows)))
}
