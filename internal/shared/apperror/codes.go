package apperror

const (
	// Client errors (4xx)
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeNotFound                = "NOT_FOUND"
	CodeDuplicateOperation      = "DUPLICATE_OPERATION"
	CodePrerequisiteMissing     = "PREREQUISITE_MISSING"
	CodeQuotaExceeded           = "QUOTA_EXCEEDED"
	CodeAlreadyProcessed        = "ALREADY_PROCESSED"
	CodeNotPending              = "NOT_PENDING"
	CodeInvalidDescriptorLength = "INVALID_DESCRIPTOR_LENGTH"
	CodeAlreadyRegistered       = "ALREADY_REGISTERED"
	CodeTooManyRequests         = "TOO_MANY_REQUESTS"
	CodeProcessing              = "PROCESSING"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
