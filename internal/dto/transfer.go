package dto

// SimulateTransferRequest asks for the converted total of a cross-currency
// transfer of Amount into Currency
type SimulateTransferRequest struct {
	Amount   float64 `json:"amount" validate:"required,positive_amount"`
	Currency string  `json:"currency" validate:"required,currency_code"`
}

// SimulateTransferResponse carries the computed quote
type SimulateTransferResponse struct {
	Currency       string `json:"currency"`
	SourceAmount   string `json:"sourceAmount"`
	ExchangeRate   string `json:"exchangeRate"`
	FeeFraction    string `json:"feeFraction"`
	ConvertedTotal string `json:"convertedTotal"`
}

// CurrencyTableResponse serves a rate or fee lookup table
type CurrencyTableResponse struct {
	Table map[string]string `json:"table"`
}
