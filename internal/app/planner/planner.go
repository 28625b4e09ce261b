package planner

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/John-Robertt/chrononame/internal/domain"
)

// Plan 按 mode 生成确定性的重命名计划（不做任何 I/O）。
// 编号模式会原地排序 inv。
func Plan(mode domain.Mode, dir, prefix string, inv domain.Inventory) ([]domain.RenamePlan, error) {
	switch mode {
	case domain.ModeSequential, "":
		return PlanSequential(dir, prefix, inv), nil
	case domain.ModeDatetime:
		return PlanDatetime(dir, prefix, inv)
	default:
		return nil, &domain.Error{Code: domain.ErrCodeConfigInvalid, Err: fmt.Errorf("未知模式：%q", mode)}
	}
}

// PlanSequential 先按时间排序，再依次命名为 <prefix><i><ext>（i 从 0 开始、连续不重复）。
func PlanSequential(dir, prefix string, inv domain.Inventory) []domain.RenamePlan {
	SelectionSort(inv)

	plans := make([]domain.RenamePlan, 0, len(inv))
	for i, r := range inv {
		base, ext := SplitName(r.Name)
		plans = append(plans, domain.RenamePlan{
			Src: filepath.Join(dir, base+ext),
			Dst: filepath.Join(dir, prefix+strconv.Itoa(i)+ext),
		})
	}
	return plans
}

// PlanDatetime 不排序，按扫描顺序命名为 "<prefix> YYYY-MM-DD HH:MM:SS<ext>"。
// 注意 prefix 与日期之间有一个空格。
func PlanDatetime(dir, prefix string, inv domain.Inventory) ([]domain.RenamePlan, error) {
	plans := make([]domain.RenamePlan, 0, len(inv))
	for _, r := range inv {
		base, ext := SplitName(r.Name)
		stamp, err := FormatStamp(r.Stamp)
		if err != nil {
			return nil, &domain.Error{Code: domain.ErrCodeTimeOutOfRange, Path: filepath.Join(dir, r.Name), Err: err}
		}
		plans = append(plans, domain.RenamePlan{
			Src: filepath.Join(dir, base+ext),
			Dst: filepath.Join(dir, prefix+" "+stamp+ext),
		})
	}
	return plans, nil
}
