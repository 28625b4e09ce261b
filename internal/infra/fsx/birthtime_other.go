//go:build !linux && !darwin && !windows

package fsx

import (
	"io/fs"
	"time"
)

func birthTime(string, fs.FileInfo) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
