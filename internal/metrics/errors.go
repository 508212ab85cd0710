package metrics

import "codeberg.org/mutker/powertray/internal/errors"

const (
	ErrRegister = errors.ErrorCode("metrics_register_failed")
	ErrCollect  = errors.ErrorCode("metrics_collect_failed")
)
