package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/John-Robertt/chrononame/internal/app/run"
	"github.com/John-Robertt/chrononame/internal/config"
	"github.com/John-Robertt/chrononame/internal/domain"
	"github.com/John-Robertt/chrononame/internal/infra/fsx"
	"github.com/John-Robertt/chrononame/internal/logging"
)

func main() {
	if code := runMain(os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func runMain(args []string, stdout, stderr io.Writer) int {
	for _, a := range args {
		if a == "--" {
			break
		}
		if isHelp(a) {
			printUsage(stdout)
			return 0
		}
	}

	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "参数错误：%v\n\n", err)
		printUsage(stderr)
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	eff, err := config.LoadEffective(cwd, cli)
	if err != nil {
		fmt.Fprintf(stderr, "chrononame: %v\n", err)
		if domain.Code(err) == domain.ErrCodeConfigInvalid {
			return 2
		}
		return 1
	}

	log, err := logging.New(eff.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "初始化日志失败：%v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// dry-run 的意义就是看计划，所以总是打印每一行。
	obs := newConsoleObserver(stdout, log, eff.Verbose || eff.DryRun)
	rr, runErr := run.Execute(ctx, eff, obs)

	// 报告在失败时同样写出，便于定位“哪些已经改名”。
	if eff.ReportPath != "" {
		if err := writeReportFile(eff.ReportPath, rr); err != nil {
			log.Error("写入报告失败", zap.String("path", eff.ReportPath), zap.Error(err))
			if runErr == nil {
				return 1
			}
		}
	}

	if runErr != nil {
		log.Error("运行失败",
			zap.String("error_code", domain.Code(runErr)),
			zap.Int("renamed", rr.Summary.Renamed),
			zap.Error(runErr),
		)
		return 1
	}
	return 0
}

func parseArgs(args []string) (config.CLIArgs, error) {
	cli := config.CLIArgs{}

	// 取得 flag 的值：优先用 "=value" 形式，否则消耗下一个参数。
	takeValue := func(i *int, flag, inline string, hasInline bool) (string, error) {
		if hasInline {
			return inline, nil
		}
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s 需要一个值", flag)
		}
		*i++
		return args[*i], nil
	}

	positional := func(a string) error {
		if cli.Dir != "" {
			return fmt.Errorf("重复的 directory：%q 与 %q", cli.Dir, a)
		}
		cli.Dir = a
		return nil
	}

	onlyPositional := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		if onlyPositional || a == "-" || !strings.HasPrefix(a, "-") {
			if err := positional(a); err != nil {
				return config.CLIArgs{}, err
			}
			continue
		}
		if a == "--" {
			onlyPositional = true
			continue
		}

		if strings.HasPrefix(a, "--") {
			name, inline, hasInline := strings.Cut(a, "=")
			switch name {
			case "--name":
				v, err := takeValue(&i, name, inline, hasInline)
				if err != nil {
					return config.CLIArgs{}, err
				}
				cli.Name, cli.NameSet = v, true
			case "--match":
				v, err := takeValue(&i, name, inline, hasInline)
				if err != nil {
					return config.CLIArgs{}, err
				}
				cli.Match = v
			case "--report":
				v, err := takeValue(&i, name, inline, hasInline)
				if err != nil {
					return config.CLIArgs{}, err
				}
				if strings.TrimSpace(v) == "" {
					return config.CLIArgs{}, fmt.Errorf("--report 不能为空")
				}
				cli.Report = v
			case "--datetime", "--verbose", "--dry-run":
				if hasInline {
					return config.CLIArgs{}, fmt.Errorf("%s 不接受值", name)
				}
				switch name {
				case "--datetime":
					cli.Datetime = true
				case "--verbose":
					cli.Verbose = true
				default:
					cli.DryRun = true
				}
			default:
				return config.CLIArgs{}, fmt.Errorf("未知参数 %q", a)
			}
			continue
		}

		// 短参数：允许合并（-dv），-n 的值可以紧跟（-nphoto）或作为下一个参数。
		short := a[1:]
		for j := 0; j < len(short); j++ {
			switch short[j] {
			case 'd':
				cli.Datetime = true
			case 'v':
				cli.Verbose = true
			case 'n':
				rest := short[j+1:]
				v, err := takeValue(&i, "-n", rest, rest != "")
				if err != nil {
					return config.CLIArgs{}, err
				}
				cli.Name, cli.NameSet = v, true
				j = len(short)
			default:
				return config.CLIArgs{}, fmt.Errorf("未知参数 %q", "-"+string(short[j]))
			}
		}
	}

	if cli.Dir == "" {
		return config.CLIArgs{}, fmt.Errorf("缺少 directory 参数")
	}
	return cli, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help"
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `用法：
  chrononame <directory> [-n|--name <prefix>] [-d|--datetime] [-v|--verbose]
             [--dry-run] [--match <glob>] [--report <file>]

把 directory 下的每个普通文件（不递归）重命名为：
  默认      <prefix><i><ext>，i 从 0 开始，按 min(创建时间, 修改时间) 升序
  --datetime <prefix> YYYY-MM-DD HH:MM:SS<ext>（UTC，不排序）
扩展名取第一个 '.' 之后的全部内容。已存在的目标文件不会被覆盖。

参数：
  -n, --name      生成文件名的前缀（默认 file；也可用 $CHRONONAME_NAME）
  -d, --datetime  用日期时间代替递增编号
  -v, --verbose   每次重命名前打印 "<源> -> <目标>"
      --dry-run   只打印计划，不重命名
      --match     只处理文件名匹配该 glob 的文件（支持 {a,b} 与 **）
      --report    把运行报告（JSON）写到该文件
  -h, --help      显示帮助

环境变量：
  CHRONONAME_LOG_LEVEL  stderr 日志级别 debug|info|warn|error（默认 warn）
`)
}

func writeReportFile(path string, rr domain.RunReport) error {
	b, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return fsx.WriteFileAtomicReplace(filepath.Dir(path), filepath.Base(path), b)
}
