package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	authmodels "voltid/internal/auth/models"
	"voltid/internal/kyc/document"
	"voltid/internal/kyc/models"
	"voltid/internal/media/vision"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
	"voltid/pkg/platform/sentinel"
)

const (
	contentTypeJPEG = "image/jpeg"
	documentsDir    = "kyc-documents"
	vehiclesDir     = "vehicle-images"

	// ConfidenceFloor is the minimum label confidence, in percent, that
	// counts as a detection.
	ConfidenceFloor = 80.0
)

var vehicleLabels = map[models.VehicleType][]string{
	models.VehicleCar:        {"Car", "Automobile", "Vehicle", "Sedan", "Suv", "Hatchback", "Coupe"},
	models.VehicleMotorcycle: {"Motorcycle", "Motorbike", "Dirt Bike"},
	models.VehicleScooter:    {"Scooter", "Motor Scooter", "Moped"},
	models.VehicleVan:        {"Van", "Minivan", "Caravan"},
}

var faceLabels = []string{"Human Face", "Face", "Person", "Head"}

func documentPrefix(userID id.UserID) string {
	return documentsDir + "/" + userID.String() + "/"
}

func vehiclePrefix(userID id.UserID) string {
	return vehiclesDir + "/" + userID.String() + "/"
}

// checkOwnership refuses keys outside the user's namespace.
func checkOwnership(key, prefix string) error {
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) || strings.Contains(key, "..") {
		return dErrors.New(dErrors.CodeForbidden, "object key does not belong to this user")
	}
	return nil
}

// GetSecureUploadURL grants a short-lived upload of a driving license photo.
func (s *Service) GetSecureUploadURL(ctx context.Context, userID id.UserID) (*models.UploadGrant, error) {
	return s.grant(ctx, userID, documentPrefix(userID)+"license/"+uuid.NewString())
}

// GetFaceUploadURL grants a short-lived upload of a face photo.
func (s *Service) GetFaceUploadURL(ctx context.Context, userID id.UserID) (*models.UploadGrant, error) {
	return s.grant(ctx, userID, documentPrefix(userID)+"face/"+uuid.NewString())
}

// GetVehicleImageUploadURL grants a short-lived upload of a vehicle photo.
func (s *Service) GetVehicleImageUploadURL(ctx context.Context, userID id.UserID, vehicleType models.VehicleType) (*models.UploadGrant, error) {
	if _, ok := vehicleLabels[vehicleType]; !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported vehicle type")
	}
	return s.grant(ctx, userID, vehiclePrefix(userID)+string(vehicleType)+"/"+uuid.NewString())
}

func (s *Service) grant(ctx context.Context, userID id.UserID, key string) (*models.UploadGrant, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	url, err := s.objects.PresignedUploadURL(ctx, key, contentTypeJPEG, s.uploadTTL)
	if err != nil {
		s.logError(ctx, "presign upload failed", err, "key", key)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "storage is unavailable")
	}
	return &models.UploadGrant{
		URL:         url,
		Key:         key,
		ContentType: contentTypeJPEG,
		ExpiresAt:   s.now().Add(s.uploadTTL),
	}, nil
}

// ProcessUploadedID reads a license photo, checks it against the user's
// profile and deletes it. The object is deleted exactly once whether or not
// the document is accepted; keys outside the user's namespace are refused
// before anything is touched.
func (s *Service) ProcessUploadedID(ctx context.Context, userID id.UserID, key string) (details *document.LicenseDetails, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "kyc.ProcessUploadedID")
	defer span.End()

	// The one path that skips deletion: another user's key is never touched.
	if err := checkOwnership(key, documentPrefix(userID)); err != nil {
		return nil, err
	}
	defer func() {
		if delErr := s.objects.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logError(ctx, "failed to delete uploaded document", delErr, "key", key)
			if err == nil {
				details = nil
				err = dErrors.Wrap(delErr, dErrors.CodeUnavailable, "failed to remove uploaded document")
			}
		}
		s.metrics.ObserveDocument(start)
		s.metrics.IncDocument(documentOutcome(err))
		if err != nil {
			recordSpanError(span, err)
		}
	}()

	var (
		user   *authmodels.User
		blocks []vision.TextBlock
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.findUser(gctx, userID)
		user = u
		return err
	})
	g.Go(func() error {
		b, err := s.text.ExtractDocumentText(gctx, key)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeImageProcessing, "failed to read the uploaded document")
		}
		blocks = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details, err = document.ParseLicense(blocks)
	if err != nil {
		return nil, err
	}
	if !details.MatchesName(user.FirstName, user.LastName) {
		s.logWarn(ctx, "license name mismatch", "user_id", userID.String())
		return nil, dErrors.New(dErrors.CodeDocumentDataMismatch, "name on the document does not match your profile")
	}
	if details.Expired(s.now()) {
		return nil, dErrors.New(dErrors.CodeDocumentExpired, "the document has expired")
	}
	return details, nil
}

func documentOutcome(err error) string {
	if err == nil {
		return "accepted"
	}
	return string(dErrors.CodeOf(err))
}

// ValidateVehicleImage asks the detector whether the photo shows
// expectedType. A detector failure is an error, never a non-match.
func (s *Service) ValidateVehicleImage(ctx context.Context, userID id.UserID, key string, expectedType models.VehicleType) (*models.DetectionResult, error) {
	ctx, span := s.tracer.Start(ctx, "kyc.ValidateVehicleImage",
		trace.WithAttributes(attribute.String("kyc.vehicle_type", string(expectedType))))
	defer span.End()

	if err := checkOwnership(key, vehiclePrefix(userID)); err != nil {
		return nil, err
	}
	candidates, ok := vehicleLabels[expectedType]
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported vehicle type")
	}
	labels, err := s.detector.DetectLabels(ctx, key, candidates)
	if err != nil {
		recordSpanError(span, err)
		s.logError(ctx, "vehicle detection failed", err, "key", key)
		return nil, dErrors.Wrap(err, dErrors.CodeImageProcessing, "failed to analyse the vehicle image")
	}

	result := &models.DetectionResult{VehicleType: expectedType}
	if best, ok := bestMatch(labels, candidates); ok {
		result.Label = best.Name
		result.Confidence = best.Confidence
		result.Matched = best.Confidence >= ConfidenceFloor
	}
	s.metrics.IncVehicleDetection(string(expectedType), result.Matched)
	return result, nil
}

// bestMatch returns the highest-confidence label whose name is one of
// candidates.
func bestMatch(labels []vision.Label, candidates []string) (vision.Label, bool) {
	var (
		best  vision.Label
		found bool
	)
	for _, l := range labels {
		for _, c := range candidates {
			if strings.EqualFold(strings.TrimSpace(l.Name), c) && (!found || l.Confidence > best.Confidence) {
				best, found = l, true
			}
		}
	}
	return best, found
}

func (s *Service) findUser(ctx context.Context, userID id.UserID) (*authmodels.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}
