package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidID         = goerr.New("invalid identifier")
	ErrInvalidPayload    = goerr.New("invalid payload")
	ErrInvalidPagePolicy = goerr.New("invalid page policy")
)

// Context keys for error values
const (
	IDKey    = "id"
	LimitKey = "limit"
	FieldKey = "field"
)
