package models

import (
	"github.com/shopspring/decimal"
)

// TransferQuote is the result of a transfer cost simulation. Computed on
// demand from the rate and fee lookup tables, never persisted.
type TransferQuote struct {
	Currency       string          `json:"currency"`
	SourceAmount   decimal.Decimal `json:"source_amount"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	FeeFraction    decimal.Decimal `json:"fee_fraction"`
	ConvertedTotal decimal.Decimal `json:"converted_total"`
}
