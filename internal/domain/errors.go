package domain

import (
	"errors"
	"fmt"
)

const (
	ErrCodeInputFailed    = "input_failed"
	ErrCodeMetadataFailed = "metadata_failed"
	ErrCodeDecodeFailed   = "decode_failed"
	ErrCodeTimeOutOfRange = "time_out_of_range"
	ErrCodeRenameFailed   = "rename_failed"
	ErrCodeTargetExists   = "target_exists"
	ErrCodeCrossDevice    = "cross_device"
	ErrCodeConfigInvalid  = "config_invalid"
	ErrCodeCanceled       = "canceled"
)

// Error 是运行阶段的结构化错误（带 error_code）。
// 所有 code 的处理方式一致：立即终止，不重试、不回滚。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s：%q：%v", e.Code, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s：%v", e.Code, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s：%q", e.Code, e.Path)
	default:
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
