package service

import (
	"context"
	"fmt"

	"jpegvault/pkg/container"
	"jpegvault/pkg/core"
	"jpegvault/pkg/exporter"
	"jpegvault/pkg/types"
)

// open 读取文件并确认里面确实藏有图片，然后解码
func (s *VaultService) open(ctx context.Context, path string) ([]container.Segment, error) {
	buf, err := s.readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if !container.IsContainer(buf) {
		return nil, fmt.Errorf("%s: %w", path, container.ErrNothingHidden)
	}
	segments, err := container.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segments, nil
}

// Extract 把容器里的每个段写到配置的解出目录，返回写出的文件数
// 非容器返回 container.ErrNothingHidden，此时不会创建任何文件
func (s *VaultService) Extract(ctx context.Context, path string, onExport exporter.ExportCallback) (int, error) {
	segments, err := s.open(ctx, path)
	if err != nil {
		return 0, err
	}

	n, err := s.app.Exporter.ExportSegments(ctx, segments, s.app.ExtractDir, onExport)
	if err != nil {
		return n, err
	}

	s.record(ctx, types.OpExtract, path, segmentInfos(segments))
	return n, nil
}

// Inspect 只解码不落盘，返回每个段的摘要
func (s *VaultService) Inspect(ctx context.Context, path string) ([]core.SegmentInfo, error) {
	segments, err := s.open(ctx, path)
	if err != nil {
		return nil, err
	}
	return segmentInfos(segments), nil
}

func segmentInfos(segments []container.Segment) []core.SegmentInfo {
	infos := make([]core.SegmentInfo, len(segments))
	for i, seg := range segments {
		infos[i] = core.NewSegmentInfo(seg.Path, seg.Image)
	}
	return infos
}
