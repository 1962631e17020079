package services

import (
	"fmt"
	"log/slog"

	"finance-ledger/internal/models"
	"finance-ledger/internal/repositories"
)

const (
	FraudRuleStatisticalOutlier = "statistical_outlier"
	FraudRuleNovelCategory      = "novel_category"
	FraudRuleBurstSpending      = "burst_spending"
)

type fraudService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         *PrometheusMetrics
}

func NewFraudService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics *PrometheusMetrics,
) FraudServiceInterface {
	return &fraudService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
	}
}

// EvaluateFraud applies the three fraud rules in order, short-circuiting on
// the first that fires. The verdict is an OR: any rule firing marks the
// candidate as fraudulent. Each rule reads the history through a half-open
// window ending at the candidate's timestamp, so the candidate (not yet
// persisted at this point) never influences its own verdict.
func (s *fraudService) EvaluateFraud(candidate *models.Transaction) (bool, string, error) {
	t := candidate.Timestamp

	outlierWindow, err := s.transactionRepo.ByTimeRange(candidate.AccountID, t.Add(-OutlierWindow), t)
	if err != nil {
		return false, "", fmt.Errorf("failed to load outlier window: %w", err)
	}

	if IsStatisticalOutlier(candidate.Amount, outlierWindow) {
		s.recordHit(candidate, FraudRuleStatisticalOutlier)
		return true, FraudRuleStatisticalOutlier, nil
	}

	categoryWindow, err := s.transactionRepo.ByCategory(candidate.AccountID, candidate.Category, t.Add(-CategoryWindow), t)
	if err != nil {
		return false, "", fmt.Errorf("failed to load category window: %w", err)
	}

	if IsNovelCategory(categoryWindow) {
		s.recordHit(candidate, FraudRuleNovelCategory)
		return true, FraudRuleNovelCategory, nil
	}

	burstWindow, err := s.transactionRepo.ByTimeRange(candidate.AccountID, t.Add(-BurstWindow), t)
	if err != nil {
		return false, "", fmt.Errorf("failed to load burst window: %w", err)
	}

	history, err := s.transactionRepo.AllByAccount(candidate.AccountID)
	if err != nil {
		return false, "", fmt.Errorf("failed to load transaction history: %w", err)
	}

	if IsBurst(burstWindow, MeanAmount(history)) {
		s.recordHit(candidate, FraudRuleBurstSpending)
		return true, FraudRuleBurstSpending, nil
	}

	return false, "", nil
}

func (s *fraudService) recordHit(candidate *models.Transaction, rule string) {
	if s.metrics != nil {
		s.metrics.RecordFraudRuleHit(rule)
	}
	slog.Info("fraud rule fired",
		"account_id", candidate.AccountID,
		"rule", rule,
		"amount", candidate.Amount.StringFixed(2),
		"category", candidate.Category,
	)
}
