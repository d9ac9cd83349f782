package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	authmodels "voltid/internal/auth/models"
	userstore "voltid/internal/auth/store/user"
	"voltid/internal/kyc/models"
	"voltid/internal/kyc/service/mocks"
	kycstore "voltid/internal/kyc/store"
	"voltid/internal/media/objectstore"
	"voltid/internal/media/vision"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	audit "voltid/pkg/platform/audit"
	"voltid/pkg/platform/sentinel"
	"voltid/pkg/platform/tx"
)

var licenseText = []vision.TextBlock{
	{ID: "1", Text: "DRIVER'S LICENCE"},
	{ID: "2", Text: "First Name: ADA"},
	{ID: "3", Text: "Surname: OBI"},
	{ID: "4", Text: "Date of Birth: 1990-04-12"},
	{ID: "5", Text: "Licence No: LAG 0042"},
	{ID: "6", Text: "Expiry Date: 2031-01-01"},
}

type KYCServiceSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	store   *kycstore.InMemory
	users   *userstore.InMemoryUserStore
	objects *objectstore.InMemory
	vision  *vision.Static
	events  []audit.Event
	service *Service
}

// recorder collects emitted events.
type recorder struct{ s *KYCServiceSuite }

func (r recorder) Emit(_ context.Context, e audit.Event) error {
	r.s.events = append(r.s.events, e)
	return nil
}

func TestKYCServiceSuite(t *testing.T) {
	suite.Run(t, new(KYCServiceSuite))
}

func (s *KYCServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	s.store = kycstore.NewInMemory()
	s.users = userstore.New()
	s.objects = objectstore.NewInMemory("kyc")
	s.vision = &vision.Static{Blocks: licenseText}
	s.events = nil
	s.service = New(s.store, s.users, s.objects, s.vision, s.vision, tx.NewInMemory(),
		WithClock(func() time.Time { return s.now }),
		WithAuditPublisher(recorder{s}),
	)
}

func (s *KYCServiceSuite) newUser(verified bool) *authmodels.User {
	u, err := authmodels.NewUser(id.UserID(uuid.New()), id.TenantID(uuid.New()),
		"Ada", "Obi", uuid.NewString()+"@example.com", "+2348000"+uuid.NewString()[:6], "hash", s.now)
	s.Require().NoError(err)
	u.EmailVerified, u.PhoneVerified = verified, verified
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

// at creates a record for a verified user and walks it forward to stage.
func (s *KYCServiceSuite) at(stage models.Stage) *authmodels.User {
	u := s.newUser(true)
	k, err := s.service.CheckOrInitializeKYC(s.ctx, u.ID)
	s.Require().NoError(err)
	for k.CurrentStage != stage {
		k, err = s.service.AdvanceStage(s.ctx, u.ID, k.CurrentStage, nil)
		s.Require().NoError(err)
	}
	return u
}

func (s *KYCServiceSuite) actions() []string {
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Action
	}
	return out
}

func (s *KYCServiceSuite) TestCheckOrInitializeKYC() {
	s.Run("new registered user starts at FACE_UPLOAD and the call is idempotent", func() {
		u := s.newUser(true)
		first, err := s.service.CheckOrInitializeKYC(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(models.StageFaceUpload, first.CurrentStage)
		s.Equal(models.StatusPending, first.Status)
		s.Empty(first.StageMetadata)

		second, err := s.service.CheckOrInitializeKYC(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(first, second)
		s.Equal([]string{string(audit.EventKYCInitialized)}, s.actions())
	})

	s.Run("unverified contact details start earlier", func() {
		u := s.newUser(false)
		k, err := s.service.CheckOrInitializeKYC(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(models.StageEmailVerification, k.CurrentStage)
	})

	s.Run("unknown user is a registration error and creates nothing", func() {
		missing := id.UserID(uuid.New())
		_, err := s.service.CheckOrInitializeKYC(s.ctx, missing)
		s.True(dErrors.HasCode(err, dErrors.CodeRegistration))
		s.Equal("User not found", dErrors.MessageOf(err))

		_, err = s.store.FindByUserID(s.ctx, missing)
		s.Error(err)
	})

	s.Run("completed kyc is refused every time", func() {
		u := s.at(models.StageCompleted)
		for range 2 {
			k, err := s.service.CheckOrInitializeKYC(s.ctx, u.ID)
			s.Nil(k)
			s.True(dErrors.HasCode(err, dErrors.CodeRegistration))
		}
	})
}

func (s *KYCServiceSuite) TestCheckOrInitializeKYCFailsWhenAuditFails() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	users := mocks.NewMockUserLookup(ctrl)
	publisher := mocks.NewMockAuditPublisher(ctrl)
	svc := New(store, users, s.objects, s.vision, s.vision, tx.NewInMemory(), WithAuditPublisher(publisher))

	u := s.newUser(true)
	store.EXPECT().FindByUserID(gomock.Any(), u.ID).Return(nil, fmt.Errorf("find kyc: %w", sentinel.ErrNotFound))
	users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

	_, err := svc.CheckOrInitializeKYC(s.ctx, u.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *KYCServiceSuite) TestAdvanceStage() {
	u := s.at(models.StageFaceUpload)

	s.Run("only the current stage can be completed", func() {
		_, err := s.service.AdvanceStage(s.ctx, u.ID, models.StageLicenseUpload, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeKYCStageInvalid))
		_, err = s.service.AdvanceStage(s.ctx, u.ID, models.StageEmailVerification, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeKYCStageInvalid))
	})

	s.Run("advancing merges metadata and moves forward", func() {
		k, err := s.service.AdvanceStage(s.ctx, u.ID, models.StageFaceUpload, map[string]any{"face_key": "k"})
		s.Require().NoError(err)
		s.Equal(models.StageLicenseUpload, k.CurrentStage)
		s.Equal(models.StatusInProgress, k.Status)
		s.Equal("k", k.StageMetadata["face_key"])
	})

	s.Run("the last stage completes the record", func() {
		done := s.at(models.StageCompleted)
		k, err := s.store.FindByUserID(s.ctx, done.ID)
		s.Require().NoError(err)
		s.True(k.IsCompleted())
		s.Contains(s.actions(), string(audit.EventKYCCompleted))
	})

	s.Run("missing record is not found", func() {
		_, err := s.service.AdvanceStage(s.ctx, id.UserID(uuid.New()), models.StageFaceUpload, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *KYCServiceSuite) TestFailStageAndReset() {
	u := s.at(models.StageLicenseUpload)

	s.Require().NoError(s.service.FailStage(s.ctx, u.ID, "blurry photo"))
	k, err := s.store.FindByUserID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(models.StageLicenseUpload, k.CurrentStage)
	s.Equal(models.StatusFailed, k.Status)
	s.Require().NotNil(k.FailureReason)
	s.Equal("blurry photo", *k.FailureReason)

	k, err = s.service.Reset(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(models.StageFaceUpload, k.CurrentStage)
	s.Equal(models.StatusPending, k.Status)
	s.Nil(k.FailureReason)
	s.Empty(k.StageMetadata)

	stored, err := s.store.FindByUserID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(models.StageFaceUpload, stored.CurrentStage)

	done := s.at(models.StageCompleted)
	_, err = s.service.Reset(s.ctx, done.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeKYCStageInvalid))
	s.Error(s.service.FailStage(s.ctx, done.ID, "late"))
}

func (s *KYCServiceSuite) TestUploadGrants() {
	u := s.newUser(true)

	g, err := s.service.GetSecureUploadURL(s.ctx, u.ID)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(g.Key, "kyc-documents/"+u.ID.String()+"/license/"))
	s.Equal("image/jpeg", g.ContentType)
	s.Equal(s.now.Add(5*time.Minute), g.ExpiresAt)
	s.Contains(g.URL, g.Key)

	g, err = s.service.GetVehicleImageUploadURL(s.ctx, u.ID, models.VehicleScooter)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(g.Key, "vehicle-images/"+u.ID.String()+"/SCOOTER/"))

	_, err = s.service.GetVehicleImageUploadURL(s.ctx, u.ID, "TRAIN")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.GetSecureUploadURL(s.ctx, id.UserID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *KYCServiceSuite) upload(u *authmodels.User) string {
	key := "kyc-documents/" + u.ID.String() + "/license/" + uuid.NewString()
	s.objects.Put(key, []byte("jpeg"))
	return key
}

func (s *KYCServiceSuite) TestProcessUploadedID() {
	u := s.newUser(true)

	s.Run("accepted document is parsed and deleted once", func() {
		key := s.upload(u)
		d, err := s.service.ProcessUploadedID(s.ctx, u.ID, key)
		s.Require().NoError(err)
		s.Equal("LAG0042", d.LicenseNumber)
		s.Equal(1, s.objects.Deletes(key))
		s.False(s.objects.Exists(key))
	})

	s.Run("name mismatch is reported and the object is still deleted", func() {
		s.vision.Blocks = []vision.TextBlock{
			{Text: "First Name: Chidi"}, {Text: "Surname: Obi"},
			{Text: "DOB: 1990-04-12"}, {Text: "Licence No: X1"},
		}
		defer func() { s.vision.Blocks = licenseText }()

		key := s.upload(u)
		_, err := s.service.ProcessUploadedID(s.ctx, u.ID, key)
		s.True(dErrors.HasCode(err, dErrors.CodeDocumentDataMismatch))
		s.Equal(1, s.objects.Deletes(key))
	})

	s.Run("failures of every kind delete exactly once", func() {
		cases := map[string]struct {
			blocks []vision.TextBlock
			err    error
			code   dErrors.Code
		}{
			"no text":       {blocks: nil, code: dErrors.CodeDocumentValidation},
			"extractor err": {err: errors.New("model offline"), code: dErrors.CodeImageProcessing},
			"expired": {blocks: []vision.TextBlock{
				{Text: "First Name: Ada"}, {Text: "Surname: Obi"}, {Text: "DOB: 1990-04-12"},
				{Text: "Licence No: X1"}, {Text: "Expiry: 2020-01-01"},
			}, code: dErrors.CodeDocumentExpired},
		}
		for name, tc := range cases {
			s.Run(name, func() {
				s.vision.Blocks, s.vision.Err = tc.blocks, tc.err
				defer func() { s.vision.Blocks, s.vision.Err = licenseText, nil }()

				key := s.upload(u)
				_, err := s.service.ProcessUploadedID(s.ctx, u.ID, key)
				s.True(dErrors.HasCode(err, tc.code), "got %v", err)
				s.Equal(1, s.objects.Deletes(key))
			})
		}
	})

	s.Run("another user's key is refused and left alone", func() {
		other := s.newUser(true)
		key := s.upload(other)
		_, err := s.service.ProcessUploadedID(s.ctx, u.ID, key)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal(0, s.objects.Deletes(key))
		s.True(s.objects.Exists(key))
	})
}

func (s *KYCServiceSuite) TestProcessUploadedIDDeleteFailure() {
	ctrl := gomock.NewController(s.T())
	objects := mocks.NewMockObjectStore(ctrl)
	svc := New(s.store, s.users, objects, s.vision, s.vision, tx.NewInMemory(),
		WithClock(func() time.Time { return s.now }))

	u := s.newUser(true)
	key := "kyc-documents/" + u.ID.String() + "/license/a"
	objects.EXPECT().Delete(gomock.Any(), key).Return(errors.New("bucket gone")).Times(1)

	d, err := svc.ProcessUploadedID(s.ctx, u.ID, key)
	s.Nil(d)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *KYCServiceSuite) TestValidateVehicleImage() {
	u := s.newUser(true)
	key := "vehicle-images/" + u.ID.String() + "/CAR/1"

	s.Run("match at or above the floor", func() {
		s.vision.Labels = []vision.Label{{Name: "vehicle", Confidence: 82}, {Name: "Car", Confidence: 97.5}}
		r, err := s.service.ValidateVehicleImage(s.ctx, u.ID, key, models.VehicleCar)
		s.Require().NoError(err)
		s.True(r.Matched)
		s.Equal("Car", r.Label)
		s.Equal(97.5, r.Confidence)
	})

	s.Run("below the floor is not a match", func() {
		s.vision.Labels = []vision.Label{{Name: "Car", Confidence: 79.9}}
		r, err := s.service.ValidateVehicleImage(s.ctx, u.ID, key, models.VehicleCar)
		s.Require().NoError(err)
		s.False(r.Matched)
	})

	s.Run("labels for another type do not count", func() {
		s.vision.Labels = []vision.Label{{Name: "Motorcycle", Confidence: 99}}
		r, err := s.service.ValidateVehicleImage(s.ctx, u.ID, key, models.VehicleVan)
		s.Require().NoError(err)
		s.False(r.Matched)
	})

	s.Run("detector failure is an image processing error", func() {
		s.vision.Err = errors.New("quota")
		defer func() { s.vision.Err = nil }()
		_, err := s.service.ValidateVehicleImage(s.ctx, u.ID, key, models.VehicleCar)
		s.True(dErrors.HasCode(err, dErrors.CodeImageProcessing))
	})

	s.Run("foreign key is forbidden", func() {
		_, err := s.service.ValidateVehicleImage(s.ctx, u.ID, "vehicle-images/someone/CAR/1", models.VehicleCar)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *KYCServiceSuite) TestOnboardingFlow() {
	u := s.at(models.StageFaceUpload)
	faceKey := "kyc-documents/" + u.ID.String() + "/face/1"

	k, err := s.service.SubmitFace(s.ctx, u.ID, faceKey)
	s.Require().NoError(err)
	s.Equal(models.StageLicenseUpload, k.CurrentStage)

	k, err = s.service.SubmitLicense(s.ctx, u.ID, s.upload(u))
	s.Require().NoError(err)
	s.Equal(models.StageFaceComparison, k.CurrentStage)
	s.Equal("LAG0042", k.StageMetadata["license_number"])
	s.Equal("2031-01-01", k.StageMetadata["license_expiry"])

	s.vision.Labels = []vision.Label{{Name: "Human Face", Confidence: 99}}
	k, err = s.service.CompareFace(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(models.StageDetailsVerification, k.CurrentStage)

	s.vision.Labels = []vision.Label{{Name: "Van", Confidence: 91}}
	k, err = s.service.SubmitVehicleImage(s.ctx, u.ID, "vehicle-images/"+u.ID.String()+"/VAN/1", models.VehicleVan)
	s.Require().NoError(err)
	s.Equal(models.StagePaymentMethod, k.CurrentStage)
	s.Equal("VAN", k.StageMetadata["vehicle_type"])
	s.Equal(faceKey, k.StageMetadata["face_key"])
}

func (s *KYCServiceSuite) TestRejectedSubmissionsFailTheStage() {
	s.Run("license with the wrong name", func() {
		u := s.at(models.StageLicenseUpload)
		s.vision.Blocks = []vision.TextBlock{
			{Text: "First Name: Bola"}, {Text: "Surname: Obi"},
			{Text: "DOB: 1990-04-12"}, {Text: "Licence No: X1"},
		}
		defer func() { s.vision.Blocks = licenseText }()

		_, err := s.service.SubmitLicense(s.ctx, u.ID, s.upload(u))
		s.True(dErrors.HasCode(err, dErrors.CodeDocumentDataMismatch))

		k, err := s.store.FindByUserID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(models.StageLicenseUpload, k.CurrentStage)
		s.Equal(models.StatusFailed, k.Status)

		// A good document afterwards clears the failure.
		s.vision.Blocks = licenseText
		k, err = s.service.SubmitLicense(s.ctx, u.ID, s.upload(u))
		s.Require().NoError(err)
		s.Nil(k.FailureReason)
	})

	s.Run("vehicle photo of the wrong type", func() {
		u := s.at(models.StageDetailsVerification)
		s.vision.Labels = []vision.Label{{Name: "Car", Confidence: 99}}
		_, err := s.service.SubmitVehicleImage(s.ctx, u.ID, "vehicle-images/"+u.ID.String()+"/MOTORCYCLE/1", models.VehicleMotorcycle)
		s.True(dErrors.HasCode(err, dErrors.CodeDocumentValidation))

		k, err := s.store.FindByUserID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusFailed, k.Status)
	})

	s.Run("no face in the photo", func() {
		u := s.at(models.StageFaceUpload)
		_, err := s.service.SubmitFace(s.ctx, u.ID, "kyc-documents/"+u.ID.String()+"/face/2")
		s.Require().NoError(err)
		_, err = s.service.SubmitLicense(s.ctx, u.ID, s.upload(u))
		s.Require().NoError(err)

		s.vision.Labels = []vision.Label{{Name: "Tree", Confidence: 99}}
		_, err = s.service.CompareFace(s.ctx, u.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeDocumentValidation))
	})

	s.Run("wrong stage", func() {
		u := s.at(models.StageFaceUpload)
		_, err := s.service.SubmitLicense(s.ctx, u.ID, s.upload(u))
		s.True(dErrors.HasCode(err, dErrors.CodeKYCStageInvalid))
	})
}
