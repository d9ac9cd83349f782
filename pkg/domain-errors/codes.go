package domainerrors

import "net/http"

// Code is a stable machine-readable error identifier.
type Code string

// Validation (100s).
const (
	CodeValidation         Code = "validation_error"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
)

// Payment (200s).
const (
	CodePaymentMethodInvalid  Code = "payment_method_invalid"
	CodePaymentMethodNotFound Code = "payment_method_not_found"
)

// Authentication and authorization (300s).
const (
	CodeAuthentication Code = "authentication_error"
	CodeUnauthorized   Code = "unauthorized"
	CodeForbidden      Code = "forbidden"
	CodeRateLimited    Code = "rate_limited"
)

// Resource state (400s).
const (
	CodeNotFound Code = "not_found"
	CodeConflict Code = "conflict"
)

// Internal (500s).
const (
	CodeInternal                 Code = "internal_error"
	CodeTimeout                  Code = "timeout"
	CodeVerificationCreateFailed Code = "verification_create_failed"
	CodeUnavailable              Code = "unavailable"
)

// Database (700s).
const (
	CodeDBConnection        Code = "db_connection"
	CodeDBQuery             Code = "db_query"
	CodeDBConstraint        Code = "db_constraint"
	CodeDBTransaction       Code = "db_transaction"
	CodeDBUniqueViolation   Code = "db_unique_violation"
	CodeDBFKViolation       Code = "db_fk_violation"
	CodeDBNotNullViolation  Code = "db_not_null_violation"
	CodeDBUndefinedRelation Code = "db_undefined_relation"
)

// KYC and document pipeline (800s).
const (
	CodeRegistration         Code = "registration_error"
	CodeDocumentValidation   Code = "document_validation"
	CodeDocumentExpired      Code = "document_expired"
	CodeDocumentDataMismatch Code = "document_data_mismatch"
	CodeImageProcessing      Code = "image_processing"
	CodeKYCStageInvalid      Code = "kyc_stage_invalid"
)

type codeInfo struct {
	number int
	status int
}

var codeTable = map[Code]codeInfo{
	CodeValidation:         {100, http.StatusBadRequest},
	CodeBadRequest:         {101, http.StatusBadRequest},
	CodeInvalidInput:       {102, http.StatusBadRequest},
	CodeInvariantViolation: {103, http.StatusBadRequest},

	CodePaymentMethodInvalid:  {200, http.StatusUnprocessableEntity},
	CodePaymentMethodNotFound: {201, http.StatusNotFound},

	CodeAuthentication: {300, http.StatusUnauthorized},
	CodeUnauthorized:   {301, http.StatusUnauthorized},
	CodeForbidden:      {302, http.StatusForbidden},
	CodeRateLimited:    {303, http.StatusTooManyRequests},

	CodeNotFound: {400, http.StatusNotFound},
	CodeConflict: {401, http.StatusConflict},

	CodeInternal:                 {500, http.StatusInternalServerError},
	CodeTimeout:                  {501, http.StatusGatewayTimeout},
	CodeVerificationCreateFailed: {502, http.StatusInternalServerError},
	CodeUnavailable:              {503, http.StatusServiceUnavailable},

	CodeDBConnection:        {700, http.StatusServiceUnavailable},
	CodeDBQuery:             {701, http.StatusInternalServerError},
	CodeDBConstraint:        {702, http.StatusConflict},
	CodeDBTransaction:       {703, http.StatusInternalServerError},
	CodeDBUniqueViolation:   {704, http.StatusConflict},
	CodeDBFKViolation:       {705, http.StatusConflict},
	CodeDBNotNullViolation:  {706, http.StatusBadRequest},
	CodeDBUndefinedRelation: {707, http.StatusInternalServerError},

	CodeRegistration:         {800, http.StatusBadRequest},
	CodeDocumentValidation:   {801, http.StatusUnprocessableEntity},
	CodeDocumentExpired:      {802, http.StatusUnprocessableEntity},
	CodeDocumentDataMismatch: {803, http.StatusUnprocessableEntity},
	CodeImageProcessing:      {804, http.StatusUnprocessableEntity},
	CodeKYCStageInvalid:      {805, http.StatusConflict},
}

// Number returns the numeric error_code for c. Unknown codes map to the
// generic internal number.
func (c Code) Number() int {
	if info, ok := codeTable[c]; ok {
		return info.number
	}
	return codeTable[CodeInternal].number
}

// HTTPStatus is the transport hint for c.
func (c Code) HTTPStatus() int {
	if info, ok := codeTable[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// IsInternal reports whether messages carrying c must be hidden from clients.
func (c Code) IsInternal() bool {
	switch c {
	case CodeInternal, CodeDBConnection, CodeDBQuery, CodeDBTransaction, CodeDBUndefinedRelation:
		return true
	}
	_, known := codeTable[c]
	return !known
}

// IsDatabase reports whether c belongs to the database family.
func (c Code) IsDatabase() bool {
	n := c.Number()
	return n >= 700 && n < 800
}

// IsDocument reports whether c belongs to the KYC document pipeline family.
func (c Code) IsDocument() bool {
	switch c {
	case CodeDocumentValidation, CodeDocumentExpired, CodeDocumentDataMismatch, CodeImageProcessing:
		return true
	}
	return false
}
