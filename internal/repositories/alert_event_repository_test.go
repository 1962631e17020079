package repositories

import (
	"testing"
	"time"

	"finance-ledger/internal/database"
	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AlertEventRepositorySuite struct {
	suite.Suite
	db      *database.DB
	repo    AlertEventRepositoryInterface
	account *models.Account
}

func (s *AlertEventRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAlertEventRepository(s.db.DB)

	user := database.CreateTestUser(s.T(), s.db, "events@example.com")
	s.account = database.CreateTestAccount(s.T(), s.db, user, decimal.NewFromInt(1000))
}

func (s *AlertEventRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestAlertEventRepositorySuite(t *testing.T) {
	suite.Run(t, new(AlertEventRepositorySuite))
}

func (s *AlertEventRepositorySuite) createEvent(createdAt time.Time) *models.AlertEvent {
	event := &models.AlertEvent{
		AccountID:      s.account.ID,
		RuleID:         uuid.New(),
		Kind:           models.AlertKindBalanceDrop,
		ThresholdValue: decimal.NewFromInt(50),
		CreatedAt:      createdAt,
	}
	s.Require().NoError(s.repo.Create(event))
	return event
}

func (s *AlertEventRepositorySuite) TestCreate_DefaultsToQueued() {
	event := s.createEvent(time.Now())
	s.Equal(models.DispatchStatusQueued, event.DispatchStatus)
	s.Nil(event.DispatchedAt)
}

func (s *AlertEventRepositorySuite) TestUpdateDispatchStatus() {
	event := s.createEvent(time.Now())

	s.NoError(s.repo.UpdateDispatchStatus(event.ID, models.DispatchStatusDelivered))

	events, _, err := s.repo.ListByAccount(s.account.ID, 0, 10)
	s.NoError(err)
	s.Require().Len(events, 1)
	s.Equal(models.DispatchStatusDelivered, events[0].DispatchStatus)
	s.NotNil(events[0].DispatchedAt)
}

func (s *AlertEventRepositorySuite) TestUpdateDispatchStatus_NotFound() {
	s.ErrorIs(s.repo.UpdateDispatchStatus(uuid.New(), models.DispatchStatusFailed), ErrAlertEventNotFound)
}

func (s *AlertEventRepositorySuite) TestListByAccount_NewestFirstWithTotal() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.createEvent(base)
	s.createEvent(base.Add(time.Hour))
	newest := s.createEvent(base.Add(2 * time.Hour))

	events, total, err := s.repo.ListByAccount(s.account.ID, 0, 2)
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(events, 2)
	s.Equal(newest.ID, events[0].ID)
}

func (s *AlertEventRepositorySuite) TestCountSince() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.createEvent(base)
	s.createEvent(base.Add(time.Hour))
	s.createEvent(base.Add(2 * time.Hour))

	count, err := s.repo.CountSince(s.account.ID, base.Add(time.Hour))
	s.NoError(err)
	s.Equal(int64(2), count)
}
