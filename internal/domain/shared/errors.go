package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// Financial engine errors. Each is local to one computation; the caller
	// decides whether to fall back, reject the write, or surface it.
	ErrNoRuleFound        = NewDomainError("NO_RULE_FOUND", "No commission rule matches the country and value")
	ErrIncompleteItemData = NewDomainError("INCOMPLETE_ITEM_DATA", "Order item is missing required financial data")
	ErrNothingToAllocate  = NewDomainError("NOTHING_TO_ALLOCATE", "Customer has no orders eligible for payment allocation")
	ErrInvalidAmount      = NewDomainError("INVALID_AMOUNT", "Monetary amount is negative or not a valid number")
)
