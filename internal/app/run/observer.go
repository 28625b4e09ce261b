package run

import (
	"time"

	"github.com/John-Robertt/chrononame/internal/config"
	"github.com/John-Robertt/chrononame/internal/domain"
)

// Observer 用于把“阶段/逐条重命名”事件从核心执行流程中解耦出来。
//
// 约束：run 包只负责发事件，不做任何输出；verbose 行与日志都由上层决定怎么打印。
type Observer interface {
	// OnStart 在 Execute 开始时调用。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（scan/plan/rename），用于打印阶段统计与耗时。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnRename 在每次重命名之前调用（dry-run 下同样调用，但不会真正执行）。
	OnRename(idx, total int, p domain.RenamePlan)
}

type nopObserver struct{}

func (nopObserver) OnStart(config.EffectiveConfig) {}
func (nopObserver) OnPhaseDone(string, map[string]any, time.Duration) {}
func (nopObserver) OnRename(int, int, domain.RenamePlan) {}
