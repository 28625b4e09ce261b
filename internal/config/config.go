package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/John-Robertt/chrononame/internal/domain"
)

const (
	// DefaultName 是生成文件名的默认前缀（当 CLI 与环境变量都未指定时）。
	DefaultName = "file"
	// DefaultLogLevel 是日志级别的默认值：默认只输出警告与错误。
	DefaultLogLevel = "warn"
)

const (
	// EnvName 覆盖默认前缀（CLI --name 优先）。
	EnvName = "CHRONONAME_NAME"
	// EnvLogLevel 控制 stderr 日志级别：debug|info|warn|error。
	EnvLogLevel = "CHRONONAME_LOG_LEVEL"
)

// CLIArgs 是 CLI 暴露的全部入口，并保留“是否显式指定”的信息。
// 这能保证覆盖优先级可实现：例如 --name= 必须能覆盖环境变量里的前缀。
type CLIArgs struct {
	Dir string

	Name    string
	NameSet bool

	Datetime bool
	Verbose  bool
	DryRun   bool

	Match  string
	Report string
}

// EffectiveConfig 是合并并做最小规范化后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// Dir 是用户给出的目录（Clean 后），用于规划与 verbose 输出；相对路径相对于 cwd。
	Dir string
	// AbsDir 是 Dir 的绝对路径，写入报告。
	AbsDir string

	Name string
	Mode domain.Mode

	Verbose bool
	DryRun  bool

	Match      string
	ReportPath string // 绝对路径；空串表示不写报告

	LogLevel string
}

// LoadEffective 校验 CLI 参数并与环境变量合并为最终配置。
//
// 覆盖优先级（固定）：
// - name：CLI --name > $CHRONONAME_NAME > 默认 file
// - 其他字段：仅由 CLI 控制
// - 日志级别：仅由 $CHRONONAME_LOG_LEVEL 控制
//
// 本工具不读写任何配置文件。
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &domain.Error{Code: domain.ErrCodeInputFailed, Path: cwd, Err: err}
	}

	if strings.TrimSpace(cli.Dir) == "" {
		return EffectiveConfig{}, &domain.Error{Code: domain.ErrCodeConfigInvalid, Err: errors.New("缺少 directory 参数")}
	}
	dir := filepath.Clean(cli.Dir)
	absDir := absCleanFrom(cwdAbs, cli.Dir)

	fi, err := os.Stat(absDir)
	if err != nil {
		return EffectiveConfig{}, &domain.Error{Code: domain.ErrCodeInputFailed, Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return EffectiveConfig{}, &domain.Error{Code: domain.ErrCodeInputFailed, Path: dir, Err: errors.New("不是目录")}
	}

	// name：CLI > env > 默认
	name := DefaultName
	if cli.NameSet {
		name = cli.Name
	} else if v := os.Getenv(EnvName); v != "" {
		name = v
	}
	if err := validateName(name); err != nil {
		return EffectiveConfig{}, &domain.Error{Code: domain.ErrCodeConfigInvalid, Err: err}
	}

	if err := validateMatch(cli.Match); err != nil {
		return EffectiveConfig{}, &domain.Error{Code: domain.ErrCodeConfigInvalid, Err: err}
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel)))
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	if err := validateLogLevel(logLevel); err != nil {
		return EffectiveConfig{}, &domain.Error{Code: domain.ErrCodeConfigInvalid, Err: err}
	}

	mode := domain.ModeSequential
	if cli.Datetime {
		mode = domain.ModeDatetime
	}

	reportPath := ""
	if strings.TrimSpace(cli.Report) != "" {
		reportPath = absCleanFrom(cwdAbs, cli.Report)
	}

	return EffectiveConfig{
		Dir:        dir,
		AbsDir:     absDir,
		Name:       name,
		Mode:       mode,
		Verbose:    cli.Verbose,
		DryRun:     cli.DryRun,
		Match:      cli.Match,
		ReportPath: reportPath,
		LogLevel:   logLevel,
	}, nil
}

// validateName 拒绝会让目标逃出目录的前缀。空前缀是允许的（生成 0.ext、1.ext ...）。
func validateName(name string) error {
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("--name 不能包含 NUL：%q", name)
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("--name 不能包含路径分隔符：%q", name)
	}
	return nil
}

func validateMatch(pattern string) error {
	if pattern == "" {
		return nil
	}
	if strings.ContainsRune(pattern, '/') {
		return fmt.Errorf("--match 只匹配文件名，不能包含 '/'：%q", pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("--match 模式无效：%q", pattern)
	}
	return nil
}

func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%s 只能是 debug|info|warn|error，实际是 %q", EnvLogLevel, level)
	}
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}
