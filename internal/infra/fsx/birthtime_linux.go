//go:build linux

package fsx

import (
	"errors"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// Linux 的 Stat_t 没有 birth time，只能走 statx(2)（内核 4.11+，且取决于文件系统）。
func birthTime(path string, _ fs.FileInfo) (time.Time, bool, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx)
	if err != nil {
		if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EPERM) {
			// 老内核或 seccomp 拦截 statx。
			return time.Time{}, false, nil
		}
		return time.Time{}, false, &fs.PathError{Op: "statx", Path: path, Err: err}
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true, nil
}
