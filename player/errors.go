package player

import (
	"errors"
	"fmt"
)

// ErrSuperseded is returned by Load when a newer Load replaced it before it settled.
var ErrSuperseded = errors.New("player: load superseded by a newer load")

// InitError reports that the platform failed to produce a ready player.
type InitError struct {
	// Code is the platform error code (see ErrCode constants).
	Code int
	// Err is the underlying cause when the failure did not come from an error callback.
	Err error
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("player init failed (code %d): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("player init failed (code %d)", e.Code)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
