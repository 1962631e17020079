package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountApply(t *testing.T) {
	account := &Account{
		UserID:  uuid.New(),
		Balance: decimal.NewFromInt(500),
	}

	before, after := account.Apply(decimal.NewFromInt(75))
	assert.True(t, before.Equal(decimal.NewFromInt(500)))
	assert.True(t, after.Equal(decimal.NewFromInt(425)))
	assert.True(t, account.Balance.Equal(after))
}

func TestAccountApply_CanOverdraw(t *testing.T) {
	account := &Account{UserID: uuid.New(), Balance: decimal.NewFromInt(10)}

	_, after := account.Apply(decimal.NewFromInt(100))
	assert.True(t, after.Equal(decimal.NewFromInt(-90)))
}

func TestAccountValidate(t *testing.T) {
	account := &Account{UserID: uuid.New(), Currency: "USD"}
	assert.NoError(t, account.Validate())

	account.UserID = uuid.Nil
	assert.Error(t, account.Validate())

	account.UserID = uuid.New()
	account.Currency = "DOLLARS"
	assert.Error(t, account.Validate())
}
