package main

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/John-Robertt/chrononame/internal/app/run"
	"github.com/John-Robertt/chrononame/internal/config"
	"github.com/John-Robertt/chrononame/internal/domain"
)

var _ run.Observer = (*consoleObserver)(nil)

// consoleObserver 把 run 的事件落到终端：
// - verbose 行（"<源> -> <目标>"）写 stdout，这是对外契约，格式不能变
// - 阶段统计与耗时走 zap（stderr，debug 级别）
type consoleObserver struct {
	w       io.Writer
	log     *zap.Logger
	verbose bool
}

func newConsoleObserver(w io.Writer, log *zap.Logger, verbose bool) *consoleObserver {
	return &consoleObserver{w: w, log: log, verbose: verbose}
}

func (o *consoleObserver) OnStart(eff config.EffectiveConfig) {
	o.log.Debug("开始运行",
		zap.String("dir", eff.AbsDir),
		zap.String("mode", string(eff.Mode)),
		zap.String("name", eff.Name),
		zap.Bool("dry_run", eff.DryRun),
		zap.String("match", eff.Match),
	)
}

func (o *consoleObserver) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	zf := make([]zap.Field, 0, len(fields)+1)
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	zf = append(zf, zap.Duration("dur", dur))
	o.log.Debug("阶段完成："+name, zf...)
}

func (o *consoleObserver) OnRename(idx, total int, p domain.RenamePlan) {
	if !o.verbose {
		return
	}
	fmt.Fprintf(o.w, "%s -> %s\n", p.Src, p.Dst)
}
