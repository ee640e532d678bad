package errs

// Sentinel errors shared by the command and query layers
var (
	// Catalog errors
	ErrCaravanNotFound = New("caravan not found")

	// Booking errors
	ErrBookingNotFound   = New("booking not found")
	ErrDuplicateBooking  = New("duplicate booking request")
	ErrCalendarTooWide   = New("calendar window too wide")
	ErrInvalidDateWindow = New("invalid date window")
	ErrInvalidCursor     = New("invalid cursor")

	// Idempotency errors
	ErrIdempotencyKeyRequired = New("idempotency key required")
	ErrIdempotencyInProgress  = New("idempotency in progress")
	ErrIdempotencyCheckFailed = New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
