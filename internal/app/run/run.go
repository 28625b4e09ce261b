package run

import (
	"context"
	"path/filepath"
	"time"

	"github.com/John-Robertt/chrononame/internal/app/planner"
	"github.com/John-Robertt/chrononame/internal/config"
	"github.com/John-Robertt/chrononame/internal/domain"
	"github.com/John-Robertt/chrononame/internal/infra/fsx"
	"github.com/John-Robertt/chrononame/internal/scan"
)

// Execute 执行一次运行（扫描 -> 规划 -> 逐个重命名），返回报告与第一个致命错误。
//
// 错误策略：任何错误立即终止，不重试、不回滚；已经完成的重命名保持不变。
// 即使失败，返回的 RunReport 也已 Finalize，可直接写盘。
func Execute(ctx context.Context, eff config.EffectiveConfig, obs Observer) (domain.RunReport, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	obs.OnStart(eff)

	rr := domain.RunReport{
		Path:      eff.AbsDir,
		Mode:      eff.Mode,
		DryRun:    eff.DryRun,
		StartedAt: time.Now().UTC(),
	}
	fail := func(err error) (domain.RunReport, error) {
		rr.Fail(err)
		rr.FinishedAt = time.Now().UTC()
		rr.Finalize()
		return rr, err
	}

	scanStarted := time.Now()
	inv, err := scan.Collect(eff.Dir, scan.Options{Match: eff.Match})
	if err != nil {
		return fail(err)
	}
	obs.OnPhaseDone("scan", map[string]any{
		"files": len(inv),
	}, time.Since(scanStarted))

	planStarted := time.Now()
	plans, err := planner.Plan(eff.Mode, eff.Dir, eff.Name, inv)
	if err != nil {
		return fail(err)
	}
	rr.Items = buildFileResults(plans)
	obs.OnPhaseDone("plan", map[string]any{
		"mode":    string(eff.Mode),
		"renames": len(plans),
	}, time.Since(planStarted))

	renameStarted := time.Now()
	renamed := 0
	for i, p := range plans {
		if err := ctx.Err(); err != nil {
			return fail(&domain.Error{Code: domain.ErrCodeCanceled, Path: p.Src, Err: err})
		}

		obs.OnRename(i+1, len(plans), p)
		if eff.DryRun {
			continue
		}

		if err := fsx.RenameNoReplace(p.Src, p.Dst); err != nil {
			rr.Items[i].Status = domain.FileStatusFailed
			return fail(renameError(p, err))
		}
		rr.Items[i].Status = domain.FileStatusRenamed
		renamed++
	}
	obs.OnPhaseDone("rename", map[string]any{
		"renamed": renamed,
		"dry_run": eff.DryRun,
	}, time.Since(renameStarted))

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr, nil
}

// 报告里只记文件名：所有文件都在同一目录（rr.Path）下。
func buildFileResults(plans []domain.RenamePlan) []domain.FileResult {
	out := make([]domain.FileResult, 0, len(plans))
	for _, p := range plans {
		out = append(out, domain.FileResult{
			Src:    filepath.Base(p.Src),
			Dst:    filepath.Base(p.Dst),
			Status: domain.FileStatusPlanned,
		})
	}
	return out
}

func renameError(p domain.RenamePlan, err error) error {
	code := domain.ErrCodeRenameFailed
	switch {
	case fsx.IsTargetExists(err):
		code = domain.ErrCodeTargetExists
	case fsx.IsCrossDevice(err):
		code = domain.ErrCodeCrossDevice
	}
	return &domain.Error{Code: code, Path: p.Src, Err: err}
}
