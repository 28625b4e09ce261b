package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrStampOutOfRange 表示时间戳无法表示为四位年份的日历时间。
var ErrStampOutOfRange = errors.New("时间戳超出可表示的日历范围")

// StampLayout 是日期时间模式下文件名里的时间格式（UTC，24 小时制）。
const StampLayout = "2006-01-02 15:04:05"

// SplitName 在第一个 '.' 处切分文件名。
// ext 含这个 '.'（"a.tar.gz" -> "a", ".tar.gz"）；没有 '.' 时 ext 为空。
func SplitName(name string) (base, ext string) {
	i := strings.IndexByte(name, '.')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// FormatStamp 把 Unix 秒格式化为 UTC 的 "YYYY-MM-DD HH:MM:SS"。
// 年份超出 0000..9999 时无法用四位数表示，返回 ErrStampOutOfRange。
func FormatStamp(sec int64) (string, error) {
	t := time.Unix(sec, 0).UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("%w：%d（年份 %d）", ErrStampOutOfRange, sec, y)
	}
	return t.Format(StampLayout), nil
}
