package icon

import "codeberg.org/mutker/powertray/internal/errors"

const (
	ErrReadFailed   = errors.ErrorCode("icon_read_failed")
	ErrDecodeFailed = errors.ErrorCode("icon_decode_failed")
	ErrEmptyImage   = errors.ErrorCode("icon_empty_image")
)
