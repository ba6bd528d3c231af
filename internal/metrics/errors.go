package metrics

import "codeberg.org/mutker/bodymind/internal/errors"

const (
	ErrInvalidMetric    = errors.ErrorCode("metrics_invalid_metric")
	ErrInvalidValue     = errors.ErrorCode("metrics_invalid_value")
	ErrInvalidProfile   = errors.ErrorCode("metrics_invalid_profile")
	ErrOperationTimeout = errors.ErrTimeout
)
