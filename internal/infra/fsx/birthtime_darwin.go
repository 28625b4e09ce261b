//go:build darwin

package fsx

import (
	"io/fs"
	"syscall"
	"time"
)

func birthTime(_ string, info fs.FileInfo) (time.Time, bool, error) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false, nil
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec), true, nil
}
