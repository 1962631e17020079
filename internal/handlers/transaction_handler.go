package handlers

import (
	goerrors "errors"
	"net/http"
	"time"

	"finance-ledger/internal/dto"
	"finance-ledger/internal/errors"
	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"
	"finance-ledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction submits a new transaction through the full pipeline:
// fraud evaluation, persistence, balance update and alert evaluation.
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != "" {
		timestamp, err = time.Parse(models.TimestampLayout, req.Timestamp)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Timestamp must use layout "+models.TimestampLayout))
		}
	}

	amount := decimal.NewFromFloat(req.Amount).Round(2)

	transaction, err := h.transactionService.CreateTransaction(userID, amount, req.Category, timestamp)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    toTransactionResponse(transaction),
		Message: "Transaction recorded",
	})
}

// ListTransactions retrieves the account's transaction history with optional
// category, date range and fraud filters
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.ListTransactionsQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters := models.TransactionFilters{
		Category:  query.Category,
		FraudOnly: query.FraudOnly,
		Offset:    query.Offset,
		Limit:     query.Limit,
	}

	if query.StartDate != "" {
		start, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("startDate must use layout 2006-01-02"))
		}
		filters.Since = &start
	}

	if query.EndDate != "" {
		end, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("endDate must use layout 2006-01-02"))
		}
		filters.Until = &end
	}

	if filters.Limit <= 0 || filters.Limit > maxPageLimit {
		filters.Limit = defaultPageLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	transactions, total, err := h.transactionService.GetTransactions(userID, filters)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	responses := make([]dto.TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = toTransactionResponse(&transactions[i])
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: responses,
		Pagination: dto.PaginationInfo{
			Offset: filters.Offset,
			Limit:  filters.Limit,
			Total:  total,
		},
	})
}

func toTransactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID,
		AccountID: tx.AccountID,
		Amount:    tx.Amount.StringFixed(2),
		Category:  tx.Category,
		Timestamp: tx.Timestamp,
		Fraud:     tx.Fraud,
		CreatedAt: tx.CreatedAt,
	}
}
