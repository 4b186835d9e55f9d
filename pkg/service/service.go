// Package service 把存储、编解码和历史记录串成用户可见的操作。
// CLI 的每个命令对应这里的一个方法。
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jpegvault/pkg/app"
	"jpegvault/pkg/core"
	"jpegvault/pkg/meta"
	"jpegvault/pkg/types"
)

// ErrHistoryDisabled 表示配置里没有开启历史记录
var ErrHistoryDisabled = errors.New("history is disabled (set history.enabled: true)")

type VaultService struct {
	app *app.App
}

func NewVaultService(application *app.App) *VaultService {
	return &VaultService{app: application}
}

// readFile 读取整个文件，错误里带上路径
func (s *VaultService) readFile(ctx context.Context, path string) ([]byte, error) {
	data, err := s.app.Store.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// record 把一次操作写入历史记录
// 操作本身已经成功落盘，历史写入失败只记日志
func (s *VaultService) record(ctx context.Context, kind types.OpKind, target string, segments []core.SegmentInfo) {
	if s.app.History == nil {
		return
	}

	rec, err := core.NewRecord(kind, target, segments)
	if err != nil {
		slog.Warn("failed to build history record", slog.String("op", kind.String()), slog.Any("error", err))
		return
	}
	if err := s.app.History.RecordOperation(ctx, rec); err != nil {
		slog.Warn("failed to write history", slog.String("op", kind.String()), slog.Any("error", err))
		return
	}
	slog.Debug("history recorded",
		slog.String("op", kind.String()),
		slog.String("id", rec.ID().Short()),
	)
}

// History 返回最近的操作记录 (新的在前)，kind 为空表示不过滤
func (s *VaultService) History(ctx context.Context, kind types.OpKind, limit int) ([]meta.OperationModel, error) {
	if s.app.History == nil {
		return nil, ErrHistoryDisabled
	}
	return s.app.History.ListOperations(ctx, kind, limit)
}

// Operation 按 ID (或唯一前缀) 取出一条记录，并校验存储的内容与 ID 一致
func (s *VaultService) Operation(ctx context.Context, id string) (*core.Record, error) {
	if s.app.History == nil {
		return nil, ErrHistoryDisabled
	}
	op, err := s.app.History.GetOperation(ctx, types.Hash(id))
	if err != nil {
		return nil, err
	}
	return op.DecodeRecord()
}
