package models

import dErrors "voltid/pkg/domain-errors"

// Stage is one step of KYC onboarding. Stages are totally ordered; see
// stageOrder.
type Stage string

const (
	StageEmailVerification   Stage = "EMAIL_VERIFICATION"
	StagePhoneVerification   Stage = "PHONE_VERIFICATION"
	StageFaceUpload          Stage = "FACE_UPLOAD"
	StageLicenseUpload       Stage = "LICENSE_UPLOAD"
	StageFaceComparison      Stage = "FACE_COMPARISON"
	StageDetailsVerification Stage = "DETAILS_VERIFICATION"
	StagePaymentMethod       Stage = "PAYMENT_METHOD"
	StageCompleted           Stage = "COMPLETED"
)

var stageOrder = []Stage{
	StageEmailVerification,
	StagePhoneVerification,
	StageFaceUpload,
	StageLicenseUpload,
	StageFaceComparison,
	StageDetailsVerification,
	StagePaymentMethod,
	StageCompleted,
}

// Index is the stage's position in the pipeline, or -1 for an unknown stage.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Stage) IsValid() bool {
	return s.Index() >= 0
}

// Next returns the stage after s. COMPLETED is its own successor.
func (s Stage) Next() Stage {
	i := s.Index()
	if i < 0 || i == len(stageOrder)-1 {
		return s
	}
	return stageOrder[i+1]
}

func (s Stage) Before(other Stage) bool {
	return s.Index() < other.Index()
}

func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unknown kyc stage")
	}
	return s, nil
}

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)
