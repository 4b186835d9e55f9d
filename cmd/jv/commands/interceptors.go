package commands

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
)

type runFunc func(cmd *cobra.Command, args []string) error

// intercept 给子命令加上结构化日志和 panic 恢复
func intercept(run runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) (err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				err = recoverFromPanic(r)
			}
			logCommand(cmd, args, time.Since(start), err)
		}()
		return run(cmd, args)
	}
}

// logCommand 统一的日志打印逻辑
// 失败的原因会由 main 打印给用户，这里只留调试信息
func logCommand(cmd *cobra.Command, args []string, duration time.Duration, err error) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelInfo
	}

	slog.Log(cmd.Context(), level, "command finished",
		slog.String("cmd", cmd.Name()),
		slog.Int("args", len(args)),
		slog.Duration("dur", duration),
		slog.String("err", errToString(err)),
	)
}

func errToString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func recoverFromPanic(p any) error {
	// 打印堆栈信息，方便调试
	slog.Error("🔥 PANIC RECOVERED",
		slog.Any("panic", p),
		slog.String("stack", string(debug.Stack())),
	)
	return fmt.Errorf("internal error: %v", p)
}
