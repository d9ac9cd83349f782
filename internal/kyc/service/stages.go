package service

import (
	"context"
	"time"

	"voltid/internal/kyc/models"
	id "voltid/pkg/domain"
	dErrors "voltid/pkg/domain-errors"
)

const metaFaceKey = "face_key"

// SubmitLicense processes an uploaded license and completes LICENSE_UPLOAD.
// A rejected document marks the stage FAILED so the user can upload again.
func (s *Service) SubmitLicense(ctx context.Context, userID id.UserID, key string) (*models.UserKYC, error) {
	if _, err := s.requireStage(ctx, userID, models.StageLicenseUpload); err != nil {
		return nil, err
	}
	details, err := s.ProcessUploadedID(ctx, userID, key)
	if err != nil {
		if dErrors.CodeOf(err).IsDocument() {
			s.failQuietly(ctx, userID, dErrors.MessageOf(err))
		}
		return nil, err
	}

	meta := map[string]any{
		"license_number":        details.LicenseNumber,
		"license_date_of_birth": details.DateOfBirth.Format(time.DateOnly),
		"license_checked_at":    s.now().UTC().Format(time.RFC3339),
	}
	if details.ExpiryDate != nil {
		meta["license_expiry"] = details.ExpiryDate.Format(time.DateOnly)
	}
	return s.AdvanceStage(ctx, userID, models.StageLicenseUpload, meta)
}

// SubmitFace records an uploaded face photo and completes FACE_UPLOAD. The
// photo is kept for FACE_COMPARISON.
func (s *Service) SubmitFace(ctx context.Context, userID id.UserID, key string) (*models.UserKYC, error) {
	if err := checkOwnership(key, documentPrefix(userID)+"face/"); err != nil {
		return nil, err
	}
	if _, err := s.requireStage(ctx, userID, models.StageFaceUpload); err != nil {
		return nil, err
	}
	return s.AdvanceStage(ctx, userID, models.StageFaceUpload, map[string]any{metaFaceKey: key})
}

// CompareFace completes FACE_COMPARISON when a face is detected in the
// stored face photo.
func (s *Service) CompareFace(ctx context.Context, userID id.UserID) (*models.UserKYC, error) {
	k, err := s.requireStage(ctx, userID, models.StageFaceComparison)
	if err != nil {
		return nil, err
	}
	key, _ := k.StageMetadata[metaFaceKey].(string)
	if key == "" {
		return nil, dErrors.New(dErrors.CodeKYCStageInvalid, "no face photo on record")
	}
	labels, err := s.detector.DetectLabels(ctx, key, faceLabels)
	if err != nil {
		s.logError(ctx, "face detection failed", err, "key", key)
		return nil, dErrors.Wrap(err, dErrors.CodeImageProcessing, "failed to analyse the face photo")
	}
	best, ok := bestMatch(labels, faceLabels)
	if !ok || best.Confidence < ConfidenceFloor {
		const reason = "no face could be detected in the photo"
		s.failQuietly(ctx, userID, reason)
		return nil, dErrors.New(dErrors.CodeDocumentValidation, reason)
	}
	return s.AdvanceStage(ctx, userID, models.StageFaceComparison, map[string]any{
		"face_confidence": best.Confidence,
		"face_checked_at": s.now().UTC().Format(time.RFC3339),
	})
}

// SubmitVehicleImage checks a vehicle photo and completes
// DETAILS_VERIFICATION. The photo is kept as evidence.
func (s *Service) SubmitVehicleImage(ctx context.Context, userID id.UserID, key string, vehicleType models.VehicleType) (*models.UserKYC, error) {
	if _, err := s.requireStage(ctx, userID, models.StageDetailsVerification); err != nil {
		return nil, err
	}
	result, err := s.ValidateVehicleImage(ctx, userID, key, vehicleType)
	if err != nil {
		return nil, err
	}
	if !result.Matched {
		reason := "the photo does not show a " + string(vehicleType)
		s.failQuietly(ctx, userID, reason)
		return nil, dErrors.New(dErrors.CodeDocumentValidation, reason)
	}
	return s.AdvanceStage(ctx, userID, models.StageDetailsVerification, map[string]any{
		"vehicle_type":       string(vehicleType),
		"vehicle_image_key":  key,
		"vehicle_label":      result.Label,
		"vehicle_confidence": result.Confidence,
	})
}

// failQuietly records a stage failure; the caller already has the error to
// return, so a failure to record it is only logged.
func (s *Service) failQuietly(ctx context.Context, userID id.UserID, reason string) {
	if err := s.FailStage(ctx, userID, reason); err != nil {
		s.logError(ctx, "failed to mark kyc stage failed", err, "user_id", userID.String())
	}
}
