package handlers

import (
	goerrors "errors"
	"net/http"

	"finance-ledger/internal/dto"
	"finance-ledger/internal/errors"
	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"
	"finance-ledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AlertHandler handles alert rule management and event history requests
type AlertHandler struct {
	alertService services.AlertServiceInterface
	accountRepo  repositories.AccountRepositoryInterface
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService services.AlertServiceInterface, accountRepo repositories.AccountRepositoryInterface) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		accountRepo:  accountRepo,
	}
}

// CreateBalanceDropAlert registers a balance-drop rule
func (h *AlertHandler) CreateBalanceDropAlert(c echo.Context) error {
	account, err := h.accountForRequest(c)
	if err != nil {
		return err
	}

	var req dto.CreateBalanceDropAlertRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	rule, err := h.alertService.CreateBalanceDropRule(account.ID, decimal.NewFromFloat(req.Threshold).Round(2))
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    toAlertRuleResponse(rule),
		Message: "Balance drop alert created",
	})
}

// CreateTargetAmountAlert registers a target-amount rule
func (h *AlertHandler) CreateTargetAmountAlert(c echo.Context) error {
	account, err := h.accountForRequest(c)
	if err != nil {
		return err
	}

	var req dto.CreateTargetAmountAlertRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	rule, err := h.alertService.CreateTargetAmountRule(
		account.ID,
		decimal.NewFromFloat(req.TargetAmount).Round(2),
		decimal.NewFromFloat(req.AlertThreshold),
	)
	if err != nil {
		if goerrors.Is(err, models.ErrInvalidAlertThreshold) {
			return SendError(c, errors.AlertInvalidThreshold)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    toAlertRuleResponse(rule),
		Message: "Target amount alert created",
	})
}

// ListAlerts lists the account's alert rules in stored order
func (h *AlertHandler) ListAlerts(c echo.Context) error {
	account, err := h.accountForRequest(c)
	if err != nil {
		return err
	}

	rules, err := h.alertService.ListRules(account.ID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.AlertRuleResponse, len(rules))
	for i := range rules {
		responses[i] = toAlertRuleResponse(&rules[i])
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: responses})
}

// DeleteAlert removes an alert rule
func (h *AlertHandler) DeleteAlert(c echo.Context) error {
	account, err := h.accountForRequest(c)
	if err != nil {
		return err
	}

	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid alert ID"))
	}

	if err := h.alertService.DeleteRule(ruleID, account.ID); err != nil {
		if goerrors.Is(err, repositories.ErrAlertRuleNotFound) {
			return SendError(c, errors.AlertNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListAlertEvents returns the account's dispatched notification history
func (h *AlertHandler) ListAlertEvents(c echo.Context) error {
	account, err := h.accountForRequest(c)
	if err != nil {
		return err
	}

	offset := getIntParam(c, "offset", 0)
	limit := getIntParam(c, "limit", defaultPageLimit)
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	events, total, err := h.alertService.ListEvents(account.ID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.AlertEventResponse, len(events))
	for i := range events {
		responses[i] = dto.AlertEventResponse{
			ID:             events[i].ID,
			RuleID:         events[i].RuleID,
			Kind:           events[i].Kind,
			ThresholdValue: events[i].ThresholdValue.StringFixed(2),
			DispatchStatus: events[i].DispatchStatus,
			DispatchedAt:   events[i].DispatchedAt,
			CreatedAt:      events[i].CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, dto.ListAlertEventsResponse{
		Events: responses,
		Pagination: dto.PaginationInfo{
			Offset: offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

func (h *AlertHandler) accountForRequest(c echo.Context) (*models.Account, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return nil, SendError(c, errors.AuthMissingToken)
	}

	account, err := h.accountRepo.GetByUserID(userID)
	if err != nil {
		if goerrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, SendError(c, errors.AccountNotFound)
		}
		return nil, SendSystemError(c, err)
	}

	return account, nil
}

func toAlertRuleResponse(rule *models.AlertRule) dto.AlertRuleResponse {
	resp := dto.AlertRuleResponse{
		ID:        rule.ID,
		AccountID: rule.AccountID,
		Kind:      rule.Kind,
		CreatedAt: rule.CreatedAt,
	}

	switch rule.Kind {
	case models.AlertKindBalanceDrop:
		resp.BalanceDropThreshold = rule.BalanceDropThreshold.StringFixed(2)
	case models.AlertKindTargetAmount:
		resp.TargetAmount = rule.TargetAmount.StringFixed(2)
		resp.AlertThreshold = rule.AlertThreshold.String()
	}

	return resp
}
