package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers.
// Handlers translate these into transport responses; the usecases never do.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Item errors
	ErrItemNotFound     = errors.New("item not found")
	ErrItemAccessDenied = errors.New("user is not the owner of this item")

	// Booking errors
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingAccessDenied    = errors.New("only the item owner can approve a booking")
	ErrBookingAlreadyDecided  = errors.New("booking already processed")
	ErrItemUnavailable        = errors.New("item is not available for booking")
	ErrInvalidBookingInterval = errors.New("invalid booking interval")
	ErrBookingStartInPast     = errors.New("start date cannot be in the past")
	ErrUnknownBookingState    = errors.New("unknown state")

	// Comment errors
	ErrCommentNotAllowed = errors.New("user can only comment on items they have booked")

	// Item request errors
	ErrRequestNotFound = errors.New("item request not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
