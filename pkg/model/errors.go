package model

import "errors"

var (
	ErrMalformedInput      = errors.New("malformed input")
	ErrUnknownCourse       = errors.New("unknown course")
	ErrDuplicateCode       = errors.New("duplicate code")
	ErrNegativeCapacity    = errors.New("capacity must not be negative")
	ErrInvalidRequestCount = errors.New("number of requests must be between 1 and 7")
	ErrDuplicateRequest    = errors.New("course requested more than once")
	ErrPriorityOutOfRange  = errors.New("priority must be between 1 and 5")
	ErrPriorityBudget      = errors.New("priority sum exceeds gamma")
)
