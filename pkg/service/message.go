package service

import (
	"context"
	"fmt"

	"jpegvault/pkg/message"
	"jpegvault/pkg/types"
)

// ReadMessage 返回 EOI 之后的消息
// 没有消息时返回 message.ErrNoMessage
func (s *VaultService) ReadMessage(ctx context.Context, path string) ([]byte, error) {
	buf, err := s.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	msg, err := message.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return msg, nil
}

// SaveMessage 用 msg 覆盖原有消息并写回原文件
func (s *VaultService) SaveMessage(ctx context.Context, path string, msg []byte) error {
	return s.rewrite(ctx, path, types.OpSaveMessage, func(buf []byte) ([]byte, error) {
		return message.Write(buf, msg)
	})
}

// RemoveMessage 去掉 EOI 之后的所有字节并写回原文件
func (s *VaultService) RemoveMessage(ctx context.Context, path string) error {
	return s.rewrite(ctx, path, types.OpRemoveMessage, message.Erase)
}

// rewrite 读取 -> 变换 -> 原地覆盖
func (s *VaultService) rewrite(ctx context.Context, path string, kind types.OpKind, transform func([]byte) ([]byte, error)) error {
	buf, err := s.readFile(ctx, path)
	if err != nil {
		return err
	}

	out, err := transform(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := s.app.Store.WriteFile(ctx, path, out); err != nil {
		return fmt.Errorf("could not write the file %s: %w", path, err)
	}

	s.record(ctx, kind, path, nil)
	return nil
}
