package service

import (
	"context"
	"fmt"
	"log/slog"

	"jpegvault/pkg/container"
	"jpegvault/pkg/core"
	"jpegvault/pkg/marker"
	"jpegvault/pkg/types"
)

// HideResult 描述一次 hide 写出的容器
type HideResult struct {
	Target   string
	Size     int64
	Segments []core.SegmentInfo
}

// Hide 把 args 指向的图片 (目录会被展开) 编码成一个容器，写到配置的容器路径
// 任何一个源读取或编码失败都不会写出文件
func (s *VaultService) Hide(ctx context.Context, args []string) (*HideResult, error) {
	// 1. 展开目录参数
	paths, err := s.app.Ingester.Expand(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, container.ErrNoSources
	}

	// 2. 并发读取所有源
	sources, err := s.app.Ingester.Load(ctx, paths)
	if err != nil {
		return nil, err
	}

	// 3. 编码
	buf, err := container.Encode(sources)
	if err != nil {
		return nil, err
	}

	// 4. 一次性写出
	target := s.app.ContainerName
	if err := s.app.Store.WriteFile(ctx, target, buf); err != nil {
		return nil, fmt.Errorf("could not write the file %s: %w", target, err)
	}
	slog.Debug("container written",
		slog.String("target", target),
		slog.Int("segments", len(sources)),
		slog.Int("bytes", len(buf)),
	)

	// 5. 摘要信息: 每个段截断后的图片
	infos := make([]core.SegmentInfo, 0, len(sources))
	for _, src := range sources {
		image, _, err := marker.CutAfterEOI(src.Data)
		if err != nil {
			return nil, err // Encode 已经检查过，不会走到这里
		}
		infos = append(infos, core.NewSegmentInfo(src.Path, image))
	}

	s.record(ctx, types.OpHide, target, infos)

	return &HideResult{
		Target:   target,
		Size:     int64(len(buf)),
		Segments: infos,
	}, nil
}
