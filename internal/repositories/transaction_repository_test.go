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

// TransactionRepositorySuite runs against an in-memory sqlite database
type TransactionRepositorySuite struct {
	suite.Suite
	db      *database.DB
	repo    TransactionRepositoryInterface
	account *models.Account
	now     time.Time
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)

	user := database.CreateTestUser(s.T(), s.db, "txrepo@example.com")
	s.account = database.CreateTestAccount(s.T(), s.db, user, decimal.NewFromInt(1000))
	s.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) insert(amount float64, category string, timestamp time.Time) *models.Transaction {
	return database.CreateTestTransaction(s.T(), s.db, s.account, decimal.NewFromFloat(amount), category, timestamp)
}

func (s *TransactionRepositorySuite) TestCreateAndGetByID() {
	tx := &models.Transaction{
		AccountID: s.account.ID,
		Amount:    decimal.NewFromFloat(49.99),
		Category:  "groceries",
		Timestamp: s.now,
	}

	s.NoError(s.repo.Create(tx))
	s.NotEqual(uuid.Nil, tx.ID)

	loaded, err := s.repo.GetByID(tx.ID)
	s.NoError(err)
	s.True(loaded.Amount.Equal(decimal.NewFromFloat(49.99)))
	s.Equal("groceries", loaded.Category)
	s.False(loaded.Fraud)
}

func (s *TransactionRepositorySuite) TestGetByID_NotFound() {
	loaded, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
	s.Nil(loaded)
}

func (s *TransactionRepositorySuite) TestCreate_RejectsInvalidAmount() {
	tx := &models.Transaction{
		AccountID: s.account.ID,
		Amount:    decimal.NewFromInt(-5),
		Category:  "groceries",
		Timestamp: s.now,
	}

	s.ErrorIs(s.repo.Create(tx), models.ErrInvalidAmount)
}

func (s *TransactionRepositorySuite) TestByTimeRange_HalfOpenWindow() {
	since := s.now.Add(-time.Hour)
	until := s.now

	s.insert(10, "groceries", since.Add(-time.Second)) // just before the window
	atSince := s.insert(20, "groceries", since)        // inclusive lower bound
	inside := s.insert(30, "groceries", since.Add(30*time.Minute))
	s.insert(40, "groceries", until) // exclusive upper bound

	window, err := s.repo.ByTimeRange(s.account.ID, since, until)
	s.NoError(err)
	s.Len(window, 2)
	s.Equal(atSince.ID, window[0].ID)
	s.Equal(inside.ID, window[1].ID)
}

func (s *TransactionRepositorySuite) TestByTimeRange_ScopedToAccount() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	otherAccount := database.CreateTestAccount(s.T(), s.db, other, decimal.Zero)
	database.CreateTestTransaction(s.T(), s.db, otherAccount, decimal.NewFromInt(10), "groceries", s.now.Add(-time.Minute))

	window, err := s.repo.ByTimeRange(s.account.ID, s.now.Add(-time.Hour), s.now)
	s.NoError(err)
	s.Empty(window)
}

func (s *TransactionRepositorySuite) TestByCategory_HalfOpenWindowAndCategoryMatch() {
	since := s.now.Add(-180 * 24 * time.Hour)

	s.insert(10, "dining", since.Add(-time.Second)) // expired
	inWindow := s.insert(20, "dining", since.Add(time.Second))
	s.insert(30, "groceries", since.Add(time.Second)) // wrong category
	s.insert(40, "dining", s.now)                     // at the upper bound

	window, err := s.repo.ByCategory(s.account.ID, "dining", since, s.now)
	s.NoError(err)
	s.Len(window, 1)
	s.Equal(inWindow.ID, window[0].ID)
}

func (s *TransactionRepositorySuite) TestAllByAccount_Chronological() {
	third := s.insert(30, "c", s.now.Add(-time.Minute))
	first := s.insert(10, "a", s.now.Add(-time.Hour))
	second := s.insert(20, "b", s.now.Add(-30*time.Minute))

	all, err := s.repo.AllByAccount(s.account.ID)
	s.NoError(err)
	s.Len(all, 3)
	s.Equal(first.ID, all[0].ID)
	s.Equal(second.ID, all[1].ID)
	s.Equal(third.ID, all[2].ID)
}

func (s *TransactionRepositorySuite) TestGetWithFilters() {
	s.insert(10, "groceries", s.now.Add(-3*time.Hour))
	s.insert(20, "dining", s.now.Add(-2*time.Hour))
	newest := s.insert(30, "groceries", s.now.Add(-time.Hour))

	since := s.now.Add(-4 * time.Hour)
	txs, total, err := s.repo.GetWithFilters(models.TransactionFilters{
		AccountID: s.account.ID,
		Category:  "groceries",
		Since:     &since,
		Limit:     10,
	})
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Len(txs, 2)
	s.Equal(newest.ID, txs[0].ID, "newest first")
}

func (s *TransactionRepositorySuite) TestGetWithFilters_Pagination() {
	for i := 0; i < 5; i++ {
		s.insert(float64(10+i), "groceries", s.now.Add(-time.Duration(i)*time.Hour))
	}

	txs, total, err := s.repo.GetWithFilters(models.TransactionFilters{
		AccountID: s.account.ID,
		Offset:    2,
		Limit:     2,
	})
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(txs, 2)
}

func (s *TransactionRepositorySuite) TestGetWithFilters_FraudOnly() {
	clean := s.insert(10, "groceries", s.now.Add(-2*time.Hour))
	flagged := s.insert(500, "casino", s.now.Add(-time.Hour))
	s.NoError(s.repo.MarkFraud(flagged.ID))

	txs, total, err := s.repo.GetWithFilters(models.TransactionFilters{
		AccountID: s.account.ID,
		FraudOnly: true,
		Limit:     10,
	})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(txs, 1)
	s.Equal(flagged.ID, txs[0].ID)
	s.NotEqual(clean.ID, txs[0].ID)
}

func (s *TransactionRepositorySuite) TestMarkFraud() {
	tx := s.insert(500, "casino", s.now)

	s.NoError(s.repo.MarkFraud(tx.ID))

	loaded, err := s.repo.GetByID(tx.ID)
	s.NoError(err)
	s.True(loaded.Fraud)

	// Marking twice is a no-op, not an error
	s.NoError(s.repo.MarkFraud(tx.ID))
}

func (s *TransactionRepositorySuite) TestMarkFraud_NotFound() {
	s.ErrorIs(s.repo.MarkFraud(uuid.New()), ErrTransactionNotFound)
}
