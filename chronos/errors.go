package chronos

import "errors"

var (
	ErrWriteReport = errors.New("chronos: could not write report")
	ErrBadReport   = errors.New("chronos: malformed report")
)
