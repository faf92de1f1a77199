package session

import "errors"

var (
	ErrUnknownEntity    = errors.New("unknown entity")
	ErrEntityExists     = errors.New("entity already exists")
	ErrUnknownKind      = errors.New("unknown entity kind")
	ErrUnhandledEvent   = errors.New("unhandled event")
	ErrUnsupportedEvent = errors.New("event not supported by entity")
	ErrSessionClosed    = errors.New("session is closed")
)
