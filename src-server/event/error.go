package event

import "errors"

var (
	// The candidate start is not strictly before the current end.
	ErrInvalidStartTime = errors.New("invalid start time: start must be before end")
	// The candidate end is not strictly after the current start.
	ErrInvalidEndTime = errors.New("invalid end time: end must be after start")
)
