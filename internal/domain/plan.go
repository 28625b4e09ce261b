package domain

// Mode 决定重命名策略。
type Mode string

const (
	// ModeSequential：按时间排序后编号（name0.ext, name1.ext, ...）。
	ModeSequential Mode = "sequential"
	// ModeDatetime：不排序，用时间戳格式化出的日期时间命名。
	ModeDatetime Mode = "datetime"
)

// RenamePlan 规划一次重命名（只描述 src/dst；执行由 run 层负责）。
type RenamePlan struct {
	Src string
	Dst string
}
