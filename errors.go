package sequencer

import "errors"

const Namespace = "sequencer"

var (
	ErrEmptySubmission = errors.New(
		Namespace + ": submission must contain at least one operation",
	)
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrInvalidState  = errors.New(Namespace + ": sequencer is closed")
	ErrDuplicateArrival = errors.New(
		Namespace + ": duplicate arrival for a sequence number already recorded",
	)
	ErrOperationPanicked = errors.New(Namespace + ": operation panicked")
	ErrStalled           = errors.New(Namespace + ": operation stalled past the deadline")
)
