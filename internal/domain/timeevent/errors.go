package timeevent

import "errors"

var (
	ErrTimeEventNotFound = errors.New("time event not found")
	ErrUnknownEventType  = errors.New("unknown event type")
)
