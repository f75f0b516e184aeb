// logkitctl 是日志目录的维护命令行工具。
//
// 用法:
//
//	logkitctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-d, --dir      日志目录路径 (默认: ./logs)
//
// 命令:
//
//	list           列出全部日志文件（最新日期在前）
//	cat <file>     输出指定日志文件的全部内容
//	tail <file>    输出指定日志文件的末尾若干行
//	clean          删除超出保留窗口的日志文件
//	purge          删除全部日志文件（需 --yes 确认）
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（文件不存在、目录不可读等）
//	2: 参数错误（缺少必需参数、非法天数、未知命令等）
//
// 示例:
//
//	logkitctl -d /var/log/myapp list
//	logkitctl -d /var/log/myapp cat log-2026-08-30.txt
//	logkitctl -d /var/log/myapp tail -n 50 log-2026-08-30.txt
//	logkitctl -d /var/log/myapp clean --days 7
//	logkitctl -d /var/log/myapp purge --yes
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
)

// defaultDir 默认日志目录。
const defaultDir = "./logs"

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "logkitctl",
		Usage:   "日志目录维护工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "日志目录路径",
				Value:   defaultDir,
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run(args []string) int {
	app := createApp()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（未知 flag、未知命令）同样返回退出码 2
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// isCLIUsageError 判断是否为 CLI 框架产生的参数错误。
// 未知命令由框架包装为 ExitCoder；flag 解析错误是普通 error，按消息识别。
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "No help topic for") ||
		strings.Contains(msg, "invalid value")
}
