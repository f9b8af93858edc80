package leave

import "errors"

var (
	ErrInvalidPeriod = errors.New("month must be between 1 and 12")
	ErrUnknownType   = errors.New("unknown leave type")
)
