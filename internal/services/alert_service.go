package services

import (
	"fmt"
	"log/slog"

	"finance-ledger/internal/models"
	"finance-ledger/internal/notifier"
	"finance-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type alertService struct {
	ruleRepo   repositories.AlertRuleRepositoryInterface
	eventRepo  repositories.AlertEventRepositoryInterface
	dispatcher *notifier.Dispatcher
	metrics    *PrometheusMetrics
}

func NewAlertService(
	ruleRepo repositories.AlertRuleRepositoryInterface,
	eventRepo repositories.AlertEventRepositoryInterface,
	dispatcher *notifier.Dispatcher,
	metrics *PrometheusMetrics,
) AlertServiceInterface {
	return &alertService{
		ruleRepo:   ruleRepo,
		eventRepo:  eventRepo,
		dispatcher: dispatcher,
		metrics:    metrics,
	}
}

func (s *alertService) CreateBalanceDropRule(accountID uuid.UUID, threshold decimal.Decimal) (*models.AlertRule, error) {
	rule := &models.AlertRule{
		AccountID:            accountID,
		Kind:                 models.AlertKindBalanceDrop,
		BalanceDropThreshold: threshold,
	}

	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, fmt.Errorf("failed to create balance drop rule: %w", err)
	}

	return rule, nil
}

func (s *alertService) CreateTargetAmountRule(accountID uuid.UUID, target, fraction decimal.Decimal) (*models.AlertRule, error) {
	rule := &models.AlertRule{
		AccountID:      accountID,
		Kind:           models.AlertKindTargetAmount,
		TargetAmount:   target,
		AlertThreshold: fraction,
	}

	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, fmt.Errorf("failed to create target amount rule: %w", err)
	}

	return rule, nil
}

func (s *alertService) ListRules(accountID uuid.UUID) ([]models.AlertRule, error) {
	return s.ruleRepo.ListByAccount(accountID)
}

func (s *alertService) DeleteRule(id, accountID uuid.UUID) error {
	return s.ruleRepo.Delete(id, accountID)
}

func (s *alertService) ListEvents(accountID uuid.UUID, offset, limit int) ([]models.AlertEvent, int64, error) {
	return s.eventRepo.ListByAccount(accountID, offset, limit)
}

// EvaluateBalanceDrop checks the account's balance-drop rules against the
// balance movement of a single transaction. Rules are walked in stored order
// and the first rule whose threshold is exceeded by |final − initial| wins;
// nil means no rule matched. At most one rule triggers per transaction no
// matter how many would match.
func (s *alertService) EvaluateBalanceDrop(accountID uuid.UUID, initialBalance, finalBalance decimal.Decimal) (*models.AlertRule, error) {
	rules, err := s.ruleRepo.ListByAccountAndKind(accountID, models.AlertKindBalanceDrop)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance drop rules: %w", err)
	}

	drop := finalBalance.Sub(initialBalance).Abs()

	for i := range rules {
		if drop.GreaterThan(rules[i].BalanceDropThreshold) {
			return &rules[i], nil
		}
	}

	return nil, nil
}

// EvaluateTargetAmount checks the account's target-amount rules against a
// balance movement. A rule fires when the balance crosses up through its goal
// (target × fraction): old < goal ≤ new. Requiring a crossing rather than a
// plain comparison makes each rule fire at most once per reach of the goal.
func (s *alertService) EvaluateTargetAmount(accountID uuid.UUID, initialBalance, finalBalance decimal.Decimal) (*models.AlertRule, error) {
	rules, err := s.ruleRepo.ListByAccountAndKind(accountID, models.AlertKindTargetAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to load target amount rules: %w", err)
	}

	for i := range rules {
		goal := rules[i].Goal()
		if initialBalance.LessThan(goal) && finalBalance.GreaterThanOrEqual(goal) {
			return &rules[i], nil
		}
	}

	return nil, nil
}

// Dispatch records the alert event and enqueues the notification. The queue
// hand-off never blocks; delivery outcome is written back to the event by the
// dispatch workers and is invisible to the transaction pipeline.
func (s *alertService) Dispatch(account *models.Account, user *models.User, rule *models.AlertRule) error {
	event := &models.AlertEvent{
		AccountID:      account.ID,
		RuleID:         rule.ID,
		Kind:           rule.Kind,
		ThresholdValue: rule.ThresholdValue(),
	}

	if err := s.eventRepo.Create(event); err != nil {
		return fmt.Errorf("failed to record alert event: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordAlertTriggered(rule.Kind)
	}

	slog.Info("alert triggered",
		"account_id", account.ID,
		"rule_id", rule.ID,
		"kind", rule.Kind,
		"threshold", rule.ThresholdValue().StringFixed(2),
	)

	s.dispatcher.Enqueue(notifier.Alert{
		EventID:        event.ID,
		AccountID:      account.ID,
		Kind:           rule.Kind,
		Threshold:      rule.ThresholdValue(),
		RecipientEmail: user.Email,
		RecipientName:  user.FullName(),
	})

	return nil
}
