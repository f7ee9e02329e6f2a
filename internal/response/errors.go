package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredential ErrCode = "INVALID_CREDENTIAL"
	ErrTokenRequired     ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid      ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden           ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly     ErrCode = "ADMIN_ACCESS_ONLY"
	ErrCandidateAccessOnly ErrCode = "CANDIDATE_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Session & submission ──────────────────────────────────────────
	ErrSessionExpired   ErrCode = "SESSION_EXPIRED"
	ErrSessionNotActive ErrCode = "SESSION_NOT_ACTIVE"
	ErrAlreadySubmitted ErrCode = "ALREADY_SUBMITTED"
	ErrResultsNotReady  ErrCode = "RESULTS_NOT_READY"
	ErrInvalidQuestion  ErrCode = "INVALID_QUESTION"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredential:
		return "Invalid credentials."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrCandidateAccessOnly:
		return "This resource is restricted to candidates."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid id format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrSessionExpired:
		return "Test session has expired."
	case ErrSessionNotActive:
		return "Test session is not active."
	case ErrAlreadySubmitted:
		return "Test has already been submitted."
	case ErrResultsNotReady:
		return "Test has not been completed yet."
	case ErrInvalidQuestion:
		return "Invalid answers for the question type."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
