//go:build windows

package fsx

import (
	"io/fs"
	"syscall"
	"time"
)

func birthTime(_ string, info fs.FileInfo) (time.Time, bool, error) {
	d, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, false, nil
	}
	return time.Unix(0, d.CreationTime.Nanoseconds()), true, nil
}
