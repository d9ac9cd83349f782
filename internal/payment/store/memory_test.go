package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"voltid/internal/payment/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
	now   time.Time
	user  id.UserID
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
	s.now = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	s.user = id.UserID(uuid.New())
}

func (s *InMemoryStoreSuite) add(userID id.UserID, token string, isDefault bool) *models.PaymentMethod {
	m, err := models.NewPaymentMethod(id.PaymentMethodID(uuid.New()), userID, "stripe", token, "visa", "4242", 12, 2030, s.now)
	s.Require().NoError(err)
	m.IsDefault = isDefault
	s.Require().NoError(s.store.Create(s.ctx, m))
	s.now = s.now.Add(time.Second)
	return m
}

func (s *InMemoryStoreSuite) TestCreateRejectsDuplicates() {
	first := s.add(s.user, "pm_1", true)

	dup := *first
	dup.ID = id.PaymentMethodID(uuid.New())
	dup.IsDefault = false
	s.ErrorIs(s.store.Create(s.ctx, &dup), sentinel.ErrConflict)

	second, err := models.NewPaymentMethod(id.PaymentMethodID(uuid.New()), s.user, "stripe", "pm_2", "visa", "1111", 12, 2030, s.now)
	s.Require().NoError(err)
	second.IsDefault = true
	s.ErrorIs(s.store.Create(s.ctx, second), sentinel.ErrConflict, "one default per user")
}

func (s *InMemoryStoreSuite) TestScopedToOwner() {
	mine := s.add(s.user, "pm_1", true)
	other := id.UserID(uuid.New())
	s.add(other, "pm_2", true)

	list, err := s.store.ListByUserID(s.ctx, s.user)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(mine.ID, list[0].ID)

	_, err = s.store.FindByID(s.ctx, other, mine.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.SetDefault(s.ctx, other, mine.ID), sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, other, mine.ID), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestSetDefaultMovesTheFlag() {
	first := s.add(s.user, "pm_1", true)
	second := s.add(s.user, "pm_2", false)

	s.Require().NoError(s.store.SetDefault(s.ctx, s.user, second.ID))

	list, err := s.store.ListByUserID(s.ctx, s.user)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(first.ID, list[0].ID, "oldest first")
	s.False(list[0].IsDefault)
	s.True(list[1].IsDefault)
}

func (s *InMemoryStoreSuite) TestDelete() {
	m := s.add(s.user, "pm_1", true)
	s.Require().NoError(s.store.Delete(s.ctx, s.user, m.ID))
	_, err := s.store.FindByID(s.ctx, s.user, m.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
