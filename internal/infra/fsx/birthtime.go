package fsx

import (
	"io/fs"
	"time"
)

// BirthTime 返回 path 的创建时间（birth time）。
//
// info 是调用方已经拿到的 os.Stat 结果（部分平台直接从中读取，避免二次 stat）。
// ok=false 表示平台或文件系统不提供创建时间；这不是错误，由调用方决定如何退化。
func BirthTime(path string, info fs.FileInfo) (t time.Time, ok bool, err error) {
	return birthTime(path, info)
}
