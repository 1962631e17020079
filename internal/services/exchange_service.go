package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"finance-ledger/internal/config"
	"finance-ledger/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidAmount   = errors.New("amount must be positive")
)

// exchangeService serves the currency rate and fee lookup tables. The tables
// are flat CSV files (currency,value) loaded once and cached; the simulation
// is pure arithmetic over the cached values.
type exchangeService struct {
	cfg config.ExchangeConfig

	once    sync.Once
	loadErr error
	rates   map[string]decimal.Decimal
	fees    map[string]decimal.Decimal
}

func NewExchangeService(cfg config.ExchangeConfig) ExchangeServiceInterface {
	return &exchangeService{cfg: cfg}
}

func (s *exchangeService) Rates() (map[string]decimal.Decimal, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.rates, nil
}

func (s *exchangeService) Fees() (map[string]decimal.Decimal, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.fees, nil
}

// Simulate computes the converted total for a cross-currency transfer:
// round(amount × (1 − fee) × rate, 2). The fee comes off the source amount
// before conversion.
func (s *exchangeService) Simulate(amount decimal.Decimal, currency string) (*models.TransferQuote, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))

	rate, ok := s.rates[currency]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}

	fee, ok := s.fees[currency]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}

	total := amount.Mul(decimal.NewFromInt(1).Sub(fee)).Mul(rate).Round(2)

	return &models.TransferQuote{
		Currency:       currency,
		SourceAmount:   amount,
		ExchangeRate:   rate,
		FeeFraction:    fee,
		ConvertedTotal: total,
	}, nil
}

func (s *exchangeService) load() error {
	s.once.Do(func() {
		s.rates, s.loadErr = loadCurrencyTable(s.cfg.RatesPath)
		if s.loadErr != nil {
			return
		}
		s.fees, s.loadErr = loadCurrencyTable(s.cfg.FeesPath)
	})
	return s.loadErr
}

// loadCurrencyTable parses a two-column CSV of currency code and decimal
// value. A header row is tolerated and skipped.
func loadCurrencyTable(path string) (map[string]decimal.Decimal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup table %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse lookup table %s: %w", path, err)
	}

	table := make(map[string]decimal.Decimal, len(records))
	for i, record := range records {
		value, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("invalid value %q in %s: %w", record[1], path, err)
		}
		table[strings.ToUpper(strings.TrimSpace(record[0]))] = value
	}

	return table, nil
}
