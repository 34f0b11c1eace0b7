package eventtype

import "errors"

var (
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrInvalidCategory   = errors.New("invalid event type category")
)
