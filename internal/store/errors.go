package store

import "errors"

// Domain errors. Every mutating operation documents the subset it can return;
// callers match them with errors.Is.
var (
	ErrAlreadyOngoing     = errors.New("another activity is already ongoing")
	ErrInvalidID          = errors.New("invalid id")
	ErrNoCurrentActivity  = errors.New("no activity is ongoing")
	ErrPomoOngoing        = errors.New("a pomodoro session is ongoing")
	ErrEqualIDs           = errors.New("ids are equal")
	ErrFirstInvalid       = errors.New("first id is invalid")
	ErrSecondInvalid      = errors.New("second id is invalid")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrInvalidTargetIndex = errors.New("invalid target index")
	ErrInvalidBucket      = errors.New("invalid bucket")
)
