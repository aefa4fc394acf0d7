package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrCaseNotFound = errors.New("case not found")
)

// Context keys for error values
const (
	CaseIDKey    = "case_id"
	MessageIDKey = "message_id"
	LimitKey     = "limit"
	OffsetKey    = "offset"
)
