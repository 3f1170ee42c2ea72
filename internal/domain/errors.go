package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrReportUnavailable = errors.New("report data is unavailable")
	ErrInvalidAmount     = errors.New("money amount is not a finite number")
)
