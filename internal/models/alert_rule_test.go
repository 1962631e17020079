package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAlertRuleValidate_BalanceDrop(t *testing.T) {
	rule := &AlertRule{
		AccountID:            uuid.New(),
		Kind:                 AlertKindBalanceDrop,
		BalanceDropThreshold: decimal.NewFromInt(50),
	}
	assert.NoError(t, rule.Validate())

	rule.BalanceDropThreshold = decimal.Zero
	assert.Error(t, rule.Validate())
}

func TestAlertRuleValidate_TargetAmount(t *testing.T) {
	rule := &AlertRule{
		AccountID:      uuid.New(),
		Kind:           AlertKindTargetAmount,
		TargetAmount:   decimal.NewFromInt(10000),
		AlertThreshold: decimal.NewFromFloat(0.9),
	}
	assert.NoError(t, rule.Validate())

	// Fraction of exactly 1 is the "notify at the full target" case
	rule.AlertThreshold = decimal.NewFromInt(1)
	assert.NoError(t, rule.Validate())

	rule.AlertThreshold = decimal.NewFromFloat(1.01)
	assert.ErrorIs(t, rule.Validate(), ErrInvalidAlertThreshold)

	rule.AlertThreshold = decimal.Zero
	assert.ErrorIs(t, rule.Validate(), ErrInvalidAlertThreshold)

	rule.AlertThreshold = decimal.NewFromFloat(0.5)
	rule.TargetAmount = decimal.Zero
	assert.Error(t, rule.Validate())
}

func TestAlertRuleValidate_UnknownKind(t *testing.T) {
	rule := &AlertRule{AccountID: uuid.New(), Kind: "balance_spike"}
	assert.ErrorIs(t, rule.Validate(), ErrInvalidAlertKind)
}

func TestAlertRuleGoal(t *testing.T) {
	rule := &AlertRule{
		Kind:           AlertKindTargetAmount,
		TargetAmount:   decimal.NewFromInt(10000),
		AlertThreshold: decimal.NewFromFloat(0.9),
	}

	assert.True(t, rule.Goal().Equal(decimal.NewFromInt(9000)))
}

func TestAlertRuleThresholdValue(t *testing.T) {
	drop := &AlertRule{
		Kind:                 AlertKindBalanceDrop,
		BalanceDropThreshold: decimal.NewFromInt(50),
	}
	assert.True(t, drop.ThresholdValue().Equal(decimal.NewFromInt(50)))

	target := &AlertRule{
		Kind:           AlertKindTargetAmount,
		TargetAmount:   decimal.NewFromInt(10000),
		AlertThreshold: decimal.NewFromFloat(0.9),
	}
	assert.True(t, target.ThresholdValue().Equal(decimal.NewFromInt(9000)))
}

func TestIsValidAlertKind(t *testing.T) {
	assert.True(t, IsValidAlertKind(AlertKindBalanceDrop))
	assert.True(t, IsValidAlertKind(AlertKindTargetAmount))
	assert.False(t, IsValidAlertKind(""))
	assert.False(t, IsValidAlertKind("balance_spike"))
}
