package repositories

import (
	"testing"

	"finance-ledger/internal/database"
	"finance-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) TestCreateAndGet() {
	user := &models.User{
		Email:        "jo@example.com",
		PasswordHash: "hashed",
		FirstName:    "Jo",
		LastName:     "Doe",
	}

	s.NoError(s.repo.Create(user))
	s.NotEqual(uuid.Nil, user.ID)

	byID, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("jo@example.com", byID.Email)

	byEmail, err := s.repo.GetByEmail("jo@example.com")
	s.NoError(err)
	s.Equal(user.ID, byEmail.ID)
}

func (s *UserRepositorySuite) TestGet_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)

	_, err = s.repo.GetByEmail("nobody@example.com")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestCreate_DuplicateEmail() {
	user := database.CreateTestUser(s.T(), s.db, "dup@example.com")
	s.NotNil(user)

	err := s.repo.Create(&models.User{
		Email:        "dup@example.com",
		PasswordHash: "hashed",
		FirstName:    "Jo",
		LastName:     "Doe",
	})
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *UserRepositorySuite) TestUpdateLastLogin() {
	user := database.CreateTestUser(s.T(), s.db, "login@example.com")
	s.Nil(user.LastLoginAt)

	s.NoError(s.repo.UpdateLastLogin(user.ID))

	updated, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.NotNil(updated.LastLoginAt)
}

func (s *UserRepositorySuite) TestUpdateLastLogin_NotFound() {
	s.ErrorIs(s.repo.UpdateLastLogin(uuid.New()), ErrUserNotFound)
}
