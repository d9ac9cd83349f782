package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"voltid/internal/kyc/models"
	id "voltid/pkg/domain"
	"voltid/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
	now   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
	s.now = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) seed(stage models.Stage) *models.UserKYC {
	k, err := models.NewUserKYC(id.KYCID(uuid.New()), id.UserID(uuid.New()), stage, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, k))
	return k
}

func (s *InMemoryStoreSuite) TestOneRecordPerUser() {
	k := s.seed(models.StageFaceUpload)

	dup, err := models.NewUserKYC(id.KYCID(uuid.New()), k.UserID, models.StageFaceUpload, s.now)
	s.Require().NoError(err)
	s.ErrorIs(s.store.Create(s.ctx, dup), sentinel.ErrConflict)

	_, err = s.store.FindByUserID(s.ctx, id.UserID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestReturnedRecordsAreCopies() {
	k := s.seed(models.StageFaceUpload)

	found, err := s.store.FindByUserID(s.ctx, k.UserID)
	s.Require().NoError(err)
	found.StageMetadata["face_key"] = "mutated"

	again, err := s.store.FindByUserID(s.ctx, k.UserID)
	s.Require().NoError(err)
	s.NotContains(again.StageMetadata, "face_key")
}

func (s *InMemoryStoreSuite) TestUpdateStageIsCompareAndSet() {
	k := s.seed(models.StageFaceUpload)

	first, _ := s.store.FindByUserID(s.ctx, k.UserID)
	second, _ := s.store.FindByUserID(s.ctx, k.UserID)

	first.ApplyAdvance(s.now, map[string]any{"face_key": "a"})
	s.Require().NoError(s.store.UpdateStage(s.ctx, first, models.StageFaceUpload))

	second.ApplyAdvance(s.now, map[string]any{"face_key": "b"})
	s.ErrorIs(s.store.UpdateStage(s.ctx, second, models.StageFaceUpload), sentinel.ErrInvalidState)

	stored, _ := s.store.FindByUserID(s.ctx, k.UserID)
	s.Equal(models.StageLicenseUpload, stored.CurrentStage)
	s.Equal("a", stored.StageMetadata["face_key"])
}

func (s *InMemoryStoreSuite) TestFailureAndReset() {
	k := s.seed(models.StageLicenseUpload)

	s.Require().NoError(s.store.SetFailure(s.ctx, k.UserID, "unreadable", s.now))
	stored, _ := s.store.FindByUserID(s.ctx, k.UserID)
	s.Equal(models.StatusFailed, stored.Status)
	s.Equal("unreadable", *stored.FailureReason)

	s.Require().NoError(s.store.ResetKYC(s.ctx, k.UserID, s.now))
	stored, _ = s.store.FindByUserID(s.ctx, k.UserID)
	s.Equal(models.StageEmailVerification, stored.CurrentStage)
	s.Equal(models.StatusPending, stored.Status)
	s.Nil(stored.FailureReason)

	s.ErrorIs(s.store.ResetKYC(s.ctx, id.UserID(uuid.New()), s.now), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestUpsertKeepsIdentity() {
	k := s.seed(models.StageFaceUpload)

	replacement, err := models.NewUserKYC(id.KYCID(uuid.New()), k.UserID, models.StagePaymentMethod, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Upsert(s.ctx, replacement))

	stored, _ := s.store.FindByUserID(s.ctx, k.UserID)
	s.Equal(k.ID, stored.ID)
	s.Equal(models.StagePaymentMethod, stored.CurrentStage)
	s.Equal(s.now, stored.CreatedAt)
}
