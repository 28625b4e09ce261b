package domain

import (
	"encoding/json"
	"time"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

const (
	FileStatusPlanned = "planned"
	FileStatusRenamed = "renamed"
	FileStatusFailed  = "failed"
)

// RunReport 是 --report 输出的结构。
type RunReport struct {
	Path   string `json:"path"`
	Mode   Mode   `json:"mode"`
	DryRun bool   `json:"dry_run"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`

	Summary ReportSummary `json:"summary"`
	Items   []FileResult  `json:"items"`
}

type ReportSummary struct {
	Files   int `json:"files"`
	Renamed int `json:"renamed"`
	Planned int `json:"planned"`
	Failed  int `json:"failed"`
}

type FileResult struct {
	Src    string `json:"src"`
	Dst    string `json:"dst"`
	Status string `json:"status"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) items 保持执行顺序（编号模式下即时间顺序），不重排
// 3) summary 与 status 由 items 和 error_code 计算得出
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()
	if r.Items == nil {
		r.Items = []FileResult{}
	}

	s := ReportSummary{Files: len(r.Items)}
	for _, it := range r.Items {
		switch it.Status {
		case FileStatusRenamed:
			s.Renamed++
		case FileStatusPlanned:
			s.Planned++
		case FileStatusFailed:
			s.Failed++
		}
	}
	r.Summary = s

	r.Status = StatusOK
	if r.ErrorCode != "" {
		r.Status = StatusFailed
	}
}

// Fail 把 err 记录到报告上（code 取自 *Error；未分类的错误记为 input_failed）。
func (r *RunReport) Fail(err error) {
	if err == nil {
		return
	}
	r.ErrorCode = Code(err)
	if r.ErrorCode == "" {
		r.ErrorCode = ErrCodeInputFailed
	}
	r.ErrorMsg = err.Error()
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}
