package errs

import "errors"

// Доменные ошибки; хендлеры мапят их на HTTP-коды.
var (
	ErrInquiryNotFound = errors.New("inquiry not found")
	ErrInvalidStatus   = errors.New("invalid status")
)
