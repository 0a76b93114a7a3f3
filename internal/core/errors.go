package core

import "errors"

var (
	ErrInvalidQuantity = errors.New("invalid memory quantity")

	ErrUnsupportedControllerKind = errors.New("unsupported controller kind")

	ErrMetricsNotAvailable = errors.New("metrics server not available")
)
