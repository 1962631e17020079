package handlers

import (
	goerrors "errors"
	"net/http"

	"finance-ledger/internal/dto"
	"finance-ledger/internal/errors"
	"finance-ledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransferHandler serves the currency lookup tables and the transfer cost
// simulation built on them. Simulation only — no balances move.
type TransferHandler struct {
	exchangeService services.ExchangeServiceInterface
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(exchangeService services.ExchangeServiceInterface) *TransferHandler {
	return &TransferHandler{
		exchangeService: exchangeService,
	}
}

// Rates serves the exchange rate lookup table
func (h *TransferHandler) Rates(c echo.Context) error {
	rates, err := h.exchangeService.Rates()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, toCurrencyTable(rates))
}

// Fees serves the transfer fee lookup table
func (h *TransferHandler) Fees(c echo.Context) error {
	fees, err := h.exchangeService.Fees()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, toCurrencyTable(fees))
}

// Simulate computes the converted total for a cross-currency transfer
func (h *TransferHandler) Simulate(c echo.Context) error {
	var req dto.SimulateTransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	quote, err := h.exchangeService.Simulate(decimal.NewFromFloat(req.Amount).Round(2), req.Currency)
	if err != nil {
		switch {
		case goerrors.Is(err, services.ErrUnknownCurrency):
			return SendError(c, errors.TransferUnknownCurrencyPair)
		case goerrors.Is(err, services.ErrInvalidAmount):
			return SendError(c, errors.TransferInvalidAmount)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.SimulateTransferResponse{
		Currency:       quote.Currency,
		SourceAmount:   quote.SourceAmount.StringFixed(2),
		ExchangeRate:   quote.ExchangeRate.String(),
		FeeFraction:    quote.FeeFraction.String(),
		ConvertedTotal: quote.ConvertedTotal.StringFixed(2),
	})
}

func toCurrencyTable(table map[string]decimal.Decimal) dto.CurrencyTableResponse {
	out := make(map[string]string, len(table))
	for currency, value := range table {
		out[currency] = value.String()
	}
	return dto.CurrencyTableResponse{Table: out}
}
