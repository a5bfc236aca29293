// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrMissingToken = errors.New("missing session token")
	ErrUnknownEvent = errors.New("unsupported event type")
)
