package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/dto"
	"github.com/rmacedo/gestor-pme/internal/adapter/repository"
	"github.com/rmacedo/gestor-pme/internal/domain/sale"
	"github.com/rmacedo/gestor-pme/internal/domain/transaction"
	"github.com/rmacedo/gestor-pme/internal/service"
)

// notFoundErrors mapeiam para 404
var notFoundErrors = []error{
	repository.ErrCustomerNotFound,
	repository.ErrProductNotFound,
	repository.ErrSaleNotFound,
	repository.ErrTransactionNotFound,
	repository.ErrUserNotFound,
}

// conflictErrors mapeiam para 409
var conflictErrors = []error{
	repository.ErrCustomerDuplicateKey,
	repository.ErrProductDuplicateCode,
	repository.ErrSaleDuplicateNumber,
	repository.ErrUserDuplicateEmail,
}

// businessErrors são regras de negócio violadas e mapeiam para 422
var businessErrors = []error{
	service.ErrInsufficientStock,
	service.ErrInactiveProduct,
	service.ErrInactiveCustomer,
	service.ErrCreditExceeded,
	sale.ErrInvalidTransition,
	transaction.ErrAlreadyPaid,
	transaction.ErrAlreadyCanceled,
}

// errorStatus mapeia um erro para o código HTTP correspondente
func errorStatus(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	if errors.Is(err, service.ErrNotAllowed) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError envia o envelope de erro com o código HTTP mapeado. O detalhe
// do erro é omitido em produção.
func respondError(ctx *gin.Context, message string, err error) {
	detail := ""
	if gin.Mode() != gin.ReleaseMode {
		detail = err.Error()
	}
	ctx.JSON(errorStatus(err), dto.NewErrorResponse(message, detail))
}
