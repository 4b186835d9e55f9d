package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("file not found")
)

// Store 抽象了整文件读写的文件系统协作方。
// 实现可以是本地磁盘、S3 兼容的对象存储，或者带缓存的装饰器。
type Store interface {
	// ReadFile 一次性读出整个文件，不存在时返回 ErrNotFound
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile 整体覆盖写入 (要么完整写入，要么不写)
	WriteFile(ctx context.Context, path string, data []byte) error

	// Exists 检查文件或目录是否存在
	Exists(ctx context.Context, path string) (bool, error)

	// Mkdir 创建目录，已存在时不报错 (幂等)
	Mkdir(ctx context.Context, path string) error
}
