//go:build unix

package fsx

import (
	"errors"
	"syscall"
)

// os.Rename 返回 *os.LinkError，它实现了 Unwrap，errors.Is 能直接看到底层 errno。
func isEXDEV(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
