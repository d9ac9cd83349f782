package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"voltid/internal/auth/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store    *InMemoryUserStore
	tenantID id.TenantID
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
	s.tenantID = id.TenantID(uuid.New())
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func (s *InMemoryUserStoreSuite) newUser(email, phone string) *models.User {
	u, err := models.NewUser(id.UserID(uuid.New()), s.tenantID, "Jane", "Doe", email, phone, "hash", time.Now())
	s.Require().NoError(err)
	return u
}

func (s *InMemoryUserStoreSuite) TestLookupBehavior() {
	ctx := context.Background()
	user := s.newUser("jane.doe@example.com", "+15551230000")
	s.Require().NoError(s.store.Create(ctx, user))

	s.Run("returns user by ID when exists", func() {
		found, err := s.store.FindByID(ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user, found)
	})

	s.Run("returns user by email and phone", func() {
		found, err := s.store.FindByEmail(ctx, user.Email)
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)

		found, err = s.store.FindByPhone(ctx, user.Phone)
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("returns ErrNotFound for unknown users", func() {
		_, err := s.store.FindByEmail(ctx, "missing@example.com")
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByID(ctx, id.UserID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestUniqueness() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newUser("a@example.com", "+15551230001")))

	s.ErrorIs(s.store.Create(ctx, s.newUser("a@example.com", "+15551230002")), sentinel.ErrConflict)
	s.ErrorIs(s.store.Create(ctx, s.newUser("b@example.com", "+15551230001")), sentinel.ErrConflict)

	n, err := s.store.CountByTenant(ctx, s.tenantID)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *InMemoryUserStoreSuite) TestReturnedCopiesAreIsolated() {
	ctx := context.Background()
	user := s.newUser("c@example.com", "+15551230003")
	s.Require().NoError(s.store.Create(ctx, user))

	found, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	found.FirstName = "Mutated"

	again, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Jane", again.FirstName)
}
