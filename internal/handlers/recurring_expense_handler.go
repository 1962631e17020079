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

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const startDateLayout = "2006-01-02"

// RecurringExpenseHandler handles recurring expense and projection requests
type RecurringExpenseHandler struct {
	expenseService services.RecurringExpenseServiceInterface
}

// NewRecurringExpenseHandler creates a new recurring expense handler
func NewRecurringExpenseHandler(expenseService services.RecurringExpenseServiceInterface) *RecurringExpenseHandler {
	return &RecurringExpenseHandler{
		expenseService: expenseService,
	}
}

// CreateExpense registers a new recurring obligation
func (h *RecurringExpenseHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateRecurringExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	startDate, err := time.Parse(startDateLayout, req.StartDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("startDate must use layout "+startDateLayout))
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyMonthly
	}

	expense, err := h.expenseService.CreateExpense(userID, req.Name, decimal.NewFromFloat(req.Amount).Round(2), frequency, startDate)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    toExpenseResponse(expense),
		Message: "Recurring expense created",
	})
}

// ListExpenses lists the account's recurring obligations
func (h *RecurringExpenseHandler) ListExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenses, err := h.expenseService.ListExpenses(userID)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	responses := make([]dto.RecurringExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = toExpenseResponse(&expenses[i])
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: responses})
}

// UpdateExpense replaces a recurring expense's fields
func (h *RecurringExpenseHandler) UpdateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid expense ID"))
	}

	var req dto.UpdateRecurringExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	startDate, err := time.Parse(startDateLayout, req.StartDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("startDate must use layout "+startDateLayout))
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyMonthly
	}

	expense, err := h.expenseService.UpdateExpense(expenseID, userID, req.Name, decimal.NewFromFloat(req.Amount).Round(2), frequency, startDate)
	if err != nil {
		switch {
		case goerrors.Is(err, repositories.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case goerrors.Is(err, repositories.ErrRecurringExpenseNotFound):
			return SendError(c, errors.ExpenseNotFound)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    toExpenseResponse(expense),
		Message: "Recurring expense updated",
	})
}

// DeleteExpense removes a recurring expense
func (h *RecurringExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid expense ID"))
	}

	if err := h.expenseService.DeleteExpense(expenseID, userID); err != nil {
		switch {
		case goerrors.Is(err, repositories.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case goerrors.Is(err, repositories.ErrRecurringExpenseNotFound):
			return SendError(c, errors.ExpenseNotFound)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// Projection returns the 12-month balance forecast
func (h *RecurringExpenseHandler) Projection(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	statements, err := h.expenseService.ProjectBalance(userID)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ProjectionResponse{Projection: statements})
}

func toExpenseResponse(expense *models.RecurringExpense) dto.RecurringExpenseResponse {
	return dto.RecurringExpenseResponse{
		ID:        expense.ID,
		AccountID: expense.AccountID,
		Name:      expense.Name,
		Amount:    expense.Amount.StringFixed(2),
		Frequency: expense.Frequency,
		StartDate: expense.StartDate.Format(startDateLayout),
		CreatedAt: expense.CreatedAt,
	}
}
