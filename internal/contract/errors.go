package contract

type ErrorCode string

const (
	ErrEmptyTranscript    ErrorCode = "EMPTY_TRANSCRIPT"
	ErrInvalidScenario    ErrorCode = "INVALID_SCENARIO"
	ErrInvalidMarket      ErrorCode = "INVALID_MARKET"
	ErrMissingQuoteID     ErrorCode = "MISSING_QUOTE_ID"
	ErrInvalidHours       ErrorCode = "INVALID_HOURS"
	ErrMissingTaskOrCity  ErrorCode = "MISSING_TASK_OR_CITY"
	ErrTranscriptTooLarge ErrorCode = "TRANSCRIPT_TOO_LARGE"
	ErrInvalidJSON        ErrorCode = "INVALID_JSON"
)

// RequestError is a validation failure on an incoming request. Callers map it
// to a client error.
type RequestError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func invalid(code ErrorCode, field, msg string) *RequestError {
	return &RequestError{Code: code, Field: field, Message: msg}
}
