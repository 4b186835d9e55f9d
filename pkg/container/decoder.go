package container

import (
	"fmt"

	"jpegvault/pkg/marker"
)

// Decode 把容器缓冲区拆回 (图片, 路径) 段，顺序与编码时一致
// 返回的 Image 是 buf 的子切片 (容量已截断)
func Decode(buf []byte) ([]Segment, error) {
	var segments []Segment
	cursor := 0

	for {
		// 1. 当前图片到第一个 EOI 为止
		eoi, ok := marker.FindFrom(buf, marker.EOI, cursor)
		if !ok {
			return nil, fmt.Errorf("segment %d at offset %d: %w", len(segments), cursor, marker.ErrNoEOI)
		}
		end := eoi + marker.Size
		seg := Segment{Image: buf[cursor:end:end]}

		// 2. EOI 之后到下一个 SOI 之间是路径
		soi, ok := marker.FindFrom(buf, marker.SOI, end)
		if !ok {
			// 最后一段: 剩下的全部是路径
			seg.Path = string(buf[end:])
		} else {
			seg.Path = string(buf[end:soi])
		}

		if seg.Path == "" {
			return nil, fmt.Errorf("segment %d at offset %d: %w", len(segments), cursor, ErrEmptyName)
		}
		segments = append(segments, seg)

		if !ok {
			return segments, nil
		}
		cursor = soi
	}
}
