package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/John-Robertt/chrononame/internal/domain"
	"github.com/John-Robertt/chrononame/internal/infra/fsx"
)

// 测试用：替换创建时间来源，模拟“创建时间早于修改时间”等场景。
var birthTime = fsx.BirthTime

// Options 控制扫描范围。零值即“目录下全部普通文件”。
type Options struct {
	// Match 是 doublestar 语法的文件名模式（只匹配文件名，不含目录）；空串表示不过滤。
	Match string
}

// Collect 扫描 dir 的直接子项，返回普通文件的清单。
//
// 规则（硬约束）：
// - 不递归；只看 dir 的直接子项
// - 按目录项的类型位过滤（不看文件名）：目录、符号链接、设备等一律跳过，点文件与无扩展名文件保留
// - 顺序与目录列举顺序一致（不排序；os.ReadDir 会按名字排序，所以这里不用它）
// - 任何错误都让整次扫描失败，不返回部分结果
//
// 注意：扫描阶段只做 stat，不读文件内容。
func Collect(dir string, opts Options) (domain.Inventory, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, &domain.Error{Code: domain.ErrCodeInputFailed, Path: dir, Err: err}
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, &domain.Error{Code: domain.ErrCodeInputFailed, Path: dir, Err: err}
	}

	inv := make(domain.Inventory, 0, len(entries))
	for _, d := range entries {
		if !d.Type().IsRegular() {
			continue
		}

		name := d.Name()
		if opts.Match != "" {
			ok, err := doublestar.Match(opts.Match, name)
			if err != nil {
				return nil, &domain.Error{Code: domain.ErrCodeConfigInvalid, Err: fmt.Errorf("--match 无效：%q：%w", opts.Match, err)}
			}
			if !ok {
				continue
			}
		}

		path := filepath.Join(dir, name)
		if !utf8.ValidString(name) {
			return nil, &domain.Error{Code: domain.ErrCodeDecodeFailed, Path: path, Err: errors.New("文件名不是合法的 UTF-8")}
		}

		stamp, err := fileStamp(path)
		if err != nil {
			return nil, &domain.Error{Code: domain.ErrCodeMetadataFailed, Path: path, Err: err}
		}

		inv = append(inv, domain.FileRecord{Name: name, Stamp: stamp})
	}
	return inv, nil
}

// fileStamp 返回 min(创建时间, 修改时间) 的 Unix 秒。
// 平台不提供创建时间时只用修改时间。
func fileStamp(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	created, ok, err := birthTime(path, info)
	if err != nil {
		return 0, err
	}
	return older(info.ModTime(), created, ok).Unix(), nil
}

func older(modified, created time.Time, hasCreated bool) time.Time {
	if hasCreated && created.Before(modified) {
		return created
	}
	return modified
}
