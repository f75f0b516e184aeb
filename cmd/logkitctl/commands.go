package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hiETsang/LogKit/pkg/observability/xdaily"
)

// usageError 表示参数错误，run() 映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// stdout 命令输出目标，测试时替换为缓冲区。
var stdout io.Writer = os.Stdout

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createListCommand(),
		createCatCommand(),
		createTailCommand(),
		createCleanCommand(),
		createPurgeCommand(),
	}
}

// openStore 按 --dir 打开日志目录。
// 维护命令不会产生写入，函数返回前由调用方 Close 回收 worker。
func openStore(cmd *cli.Command) (*xdaily.Store, error) {
	dir := cmd.String("dir")
	if strings.TrimSpace(dir) == "" {
		return nil, &usageError{msg: "日志目录不能为空"}
	}
	store, err := xdaily.New(dir)
	if err != nil {
		return nil, fmt.Errorf("打开日志目录失败: %w", err)
	}
	return store, nil
}

// closeStore 关闭 Store，关闭失败仅提示不改变命令结果。
func closeStore(ctx context.Context, store *xdaily.Store) {
	if err := store.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "警告: 关闭日志目录失败: %v\n", err)
	}
}

// createListCommand 创建 list 子命令。
func createListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "列出全部日志文件（最新日期在前）",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(ctx, store)

			names, err := store.ListLogFiles()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}
}

// createCatCommand 创建 cat 子命令。
func createCatCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "输出指定日志文件的全部内容",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return &usageError{msg: "缺少文件名参数"}
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(ctx, store)

			content, ok := store.ReadFile(name)
			if !ok {
				return fmt.Errorf("日志文件不可读: %s", name)
			}
			fmt.Fprint(stdout, content)
			return nil
		},
	}
}

// createTailCommand 创建 tail 子命令。
func createTailCommand() *cli.Command {
	return &cli.Command{
		Name:      "tail",
		Usage:     "输出指定日志文件的末尾若干行",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Usage:   "输出的行数",
				Value:   10,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return &usageError{msg: "缺少文件名参数"}
			}
			n := cmd.Int("lines")
			if n <= 0 {
				return &usageError{msg: fmt.Sprintf("行数必须为正: %d", n)}
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(ctx, store)

			lines, ok := store.Tail(name, n)
			if !ok {
				return fmt.Errorf("日志文件不可读: %s", name)
			}
			for _, line := range lines {
				fmt.Fprintln(stdout, line)
			}
			return nil
		},
	}
}

// createCleanCommand 创建 clean 子命令。
func createCleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "删除超出保留窗口的日志文件",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "days",
				Usage: "保留天数",
				Value: 7,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			days := cmd.Int("days")
			if days <= 0 {
				return &usageError{msg: fmt.Sprintf("保留天数必须为正: %d", days)}
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(ctx, store)

			before, err := store.ListLogFiles()
			if err != nil {
				return err
			}
			if err := store.CleanupExpired(ctx, days); err != nil {
				return err
			}
			after, err := store.ListLogFiles()
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "已删除 %d 个过期日志文件（保留 %d 天）\n", len(before)-len(after), days)
			return nil
		},
	}
}

// createPurgeCommand 创建 purge 子命令。
func createPurgeCommand() *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "删除全部日志文件",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "确认删除，缺省时拒绝执行",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool("yes") {
				return &usageError{msg: "purge 会删除全部日志文件，需显式传入 --yes 确认"}
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore(ctx, store)

			before, err := store.ListLogFiles()
			if err != nil {
				return err
			}
			if err := store.DeleteAll(ctx); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "已删除 %d 个日志文件\n", len(before))
			return nil
		},
	}
}
