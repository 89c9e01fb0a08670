package domain

import "errors"

var (
	// ErrInvalidOptions is returned when portfolio options are missing or out of range.
	ErrInvalidOptions = errors.New("invalid portfolio options")
	// ErrInvalidMarketData is returned for malformed market series (gaps, NaN, non-positive prices).
	ErrInvalidMarketData = errors.New("invalid market data")
	// ErrInsufficientData is returned when a cycle window does not fit inside the market series.
	ErrInsufficientData = errors.New("insufficient market data")
	// ErrNumericDegeneracy is returned when a computation produces NaN or Inf.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)
