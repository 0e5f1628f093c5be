package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/dto"
	transactiondomain "github.com/rmacedo/gestor-pme/internal/domain/transaction"
	"github.com/rmacedo/gestor-pme/internal/service"
	"github.com/rmacedo/gestor-pme/pkg/auth"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// TransactionController gerencia as requisições do módulo financeiro
type TransactionController struct {
	transactionRepo transactiondomain.Repository
	financeService  *service.FinanceService
	logger          logger.Logger
}

// NewTransactionController cria uma nova instância de TransactionController
func NewTransactionController(transactionRepo transactiondomain.Repository, financeService *service.FinanceService, logger logger.Logger) *TransactionController {
	return &TransactionController{
		transactionRepo: transactionRepo,
		financeService:  financeService,
		logger:          logger,
	}
}

// Create cria uma nova transação
// @Summary Criar transação
// @Description Cria um novo lançamento financeiro (receita ou despesa)
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param transaction body dto.TransactionRequest true "Dados da transação"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /financeiro [post]
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	userID, _, _ := auth.CurrentUser(ctx)

	t, err := transactiondomain.NewTransaction(
		req.Type,
		req.Category,
		req.Description,
		req.Amount,
		req.DueDate,
		req.PaymentMethod,
		userID,
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("erro ao criar transação", err.Error()))
		return
	}

	t.Recurrent = req.Recurrent
	if req.Periodicity != "" {
		if req.Periodicity.Months() == 0 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("periodicidade inválida", string(req.Periodicity)))
			return
		}
		t.Periodicity = req.Periodicity
	}
	if req.Installments != nil {
		t.Installments = *req.Installments
	}
	t.SaleID = req.SaleID
	t.Observations = req.Observations
	t.Metadata = req.Metadata

	if err := c.transactionRepo.Create(ctx, t); err != nil {
		c.logger.Error("erro ao salvar transação", "error", err)
		respondError(ctx, "erro ao salvar transação", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("transação criada com sucesso", dto.ToTransactionResponse(t)))
}

// Get retorna uma transação pelo ID
// @Summary Buscar transação
// @Description Retorna os dados de uma transação pelo ID
// @Tags financeiro
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da transação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /financeiro/{id} [get]
func (c *TransactionController) Get(ctx *gin.Context) {
	t, err := c.transactionRepo.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao buscar transação", err)
		return
	}

	t.RefreshOverdue(time.Now())

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToTransactionResponse(t)))
}

// List lista as transações com filtros e paginação
// @Summary Listar transações
// @Description Lista as transações com filtros e paginação, ordenadas por vencimento
// @Tags financeiro
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Param tipo query string false "Tipo (receita/despesa)"
// @Param categoria query string false "Categoria"
// @Param status query string false "Status"
// @Param recorrente query bool false "Apenas recorrentes"
// @Param inicio query string false "Vencimento inicial (YYYY-MM-DD)"
// @Param fim query string false "Vencimento final (YYYY-MM-DD)"
// @Success 200 {object} dto.SuccessResponse
// @Router /financeiro [get]
func (c *TransactionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	filter := transactiondomain.ListFilter{
		Type:     transactiondomain.Type(ctx.Query("tipo")),
		Category: transactiondomain.Category(ctx.Query("categoria")),
		Status:   transactiondomain.Status(ctx.Query("status")),
	}
	if recurrent := ctx.Query("recorrente"); recurrent != "" {
		value := recurrent == "true"
		filter.Recurrent = &value
	}
	if from := ctx.Query("inicio"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DueFrom = &t
		}
	}
	if to := ctx.Query("fim"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DueTo = &t
		}
	}

	transactions, err := c.transactionRepo.List(ctx, filter, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar transações", "error", err)
		respondError(ctx, "erro ao listar transações", err)
		return
	}

	total, err := c.transactionRepo.Count(ctx, filter)
	if err != nil {
		respondError(ctx, "erro ao contar transações", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(
		dto.ToTransactionListResponse(transactions),
		pagination.Page, pagination.PageSize, total))
}

// Pay registra o pagamento de uma transação
// @Summary Registrar pagamento
// @Description Registra o pagamento de uma transação. Transações recorrentes geram a próxima parcela.
// @Tags financeiro
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da transação"
// @Param payment body dto.PaymentRequest true "Dados do pagamento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /financeiro/{id}/pagamento [post]
func (c *TransactionController) Pay(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("dados inválidos", err.Error()))
		return
	}

	result, err := c.financeService.RegisterPayment(ctx, ctx.Param("id"), req.PaidDate, req.Receipt)
	if err != nil {
		c.logger.Error("erro ao registrar pagamento", "transaction_id", ctx.Param("id"), "error", err)
		respondError(ctx, "erro ao registrar pagamento", err)
		return
	}

	response := dto.PaymentResponse{
		Transaction: dto.ToTransactionResponse(result.Paid),
	}
	if result.Next != nil {
		next := dto.ToTransactionResponse(result.Next)
		response.NextInstallment = &next
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("pagamento registrado com sucesso", response))
}

// Cancel cancela uma transação
// @Summary Cancelar transação
// @Description Cancela uma transação não paga
// @Tags financeiro
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da transação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /financeiro/{id}/cancelar [patch]
func (c *TransactionController) Cancel(ctx *gin.Context) {
	t, err := c.financeService.Cancel(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "erro ao cancelar transação", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("transação cancelada com sucesso", dto.ToTransactionResponse(t)))
}

// Balance calcula o balanço financeiro do período
// @Summary Balanço financeiro
// @Description Soma receitas e despesas pagas dentro da janela informada
// @Tags financeiro
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param inicio query string false "Data inicial (YYYY-MM-DD)"
// @Param fim query string false "Data final (YYYY-MM-DD)"
// @Success 200 {object} dto.SuccessResponse
// @Router /financeiro/relatorios/balanco [get]
func (c *TransactionController) Balance(ctx *gin.Context) {
	filter := c.balanceFilter(ctx)

	balance, err := c.financeService.Balance(ctx, filter)
	if err != nil {
		c.logger.Error("erro ao calcular balanço", "error", err)
		respondError(ctx, "erro ao calcular balanço", err)
		return
	}

	breakdown, err := c.financeService.Breakdown(ctx, filter)
	if err != nil {
		c.logger.Error("erro ao agrupar transações", "error", err)
		respondError(ctx, "erro ao agrupar transações", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", dto.ToBalanceResponse(balance, breakdown)))
}

// Breakdown agrupa as transações pagas por tipo e categoria
// @Summary Totais por categoria
// @Description Agrupa as transações pagas por tipo e categoria
// @Tags financeiro
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param inicio query string false "Data inicial (YYYY-MM-DD)"
// @Param fim query string false "Data final (YYYY-MM-DD)"
// @Success 200 {object} dto.SuccessResponse
// @Router /financeiro/relatorios/categorias [get]
func (c *TransactionController) Breakdown(ctx *gin.Context) {
	filter := c.balanceFilter(ctx)

	breakdown, err := c.financeService.Breakdown(ctx, filter)
	if err != nil {
		c.logger.Error("erro ao agrupar transações", "error", err)
		respondError(ctx, "erro ao agrupar transações", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("", breakdown))
}

// balanceFilter extrai a janela de datas da query string
func (c *TransactionController) balanceFilter(ctx *gin.Context) transactiondomain.BalanceFilter {
	var filter transactiondomain.BalanceFilter

	if from := ctx.Query("inicio"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.PaidFrom = &t
		}
	}
	if to := ctx.Query("fim"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.PaidTo = &t
		}
	}

	return filter
}
