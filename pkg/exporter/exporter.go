package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"jpegvault/pkg/container"
	"jpegvault/pkg/storage"
)

// ErrUnsafeName 表示解码出的文件名会逃出解出目录
var ErrUnsafeName = errors.New("segment name escapes the target directory")

type Exporter struct {
	store storage.Store
}

func NewExporter(store storage.Store) *Exporter {
	return &Exporter{store: store}
}

// ExportCallback 在每个段成功落盘后被调用
type ExportCallback func(target string, seg container.Segment)

// TargetPath 返回段在 dir 下的落盘路径
func TargetPath(dir, name string) (string, error) {
	target := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", name, ErrUnsafeName)
	}
	return target, nil
}

// ExportSegments 创建 dir (幂等) 并按顺序写出每个段
// 遇到第一个失败立即返回；已经写出的文件保留在磁盘上
func (e *Exporter) ExportSegments(ctx context.Context, segments []container.Segment, dir string, onExport ExportCallback) (int, error) {
	// 1. 准备目录
	if err := e.store.Mkdir(ctx, dir); err != nil {
		return 0, fmt.Errorf("could not create directory %s: %w", dir, err)
	}

	// 2. 逐个写出，同名文件直接覆盖
	written := 0
	for _, seg := range segments {
		target, err := TargetPath(dir, seg.Path)
		if err != nil {
			return written, err
		}

		if err := e.store.WriteFile(ctx, target, seg.Image); err != nil {
			return written, fmt.Errorf("could not write the file %s: %w", seg.Path, err)
		}
		written++
		slog.Debug("segment exported", slog.String("target", target), slog.Int64("size", seg.Size()))

		if onExport != nil {
			onExport(target, seg)
		}
	}
	return written, nil
}
