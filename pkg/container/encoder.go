package container

import (
	"fmt"

	"jpegvault/pkg/marker"
)

// Encode 按给定顺序拼接 (截断后的图片 + 路径字节)
// 源文件 EOI 之后的任何数据 (旧消息、旧容器) 都会被丢弃
func Encode(sources []Source) ([]byte, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	// 1. 先全部截断，顺便算出总长度，一次分配
	images := make([][]byte, len(sources))
	total := 0
	for i, src := range sources {
		image, _, err := marker.CutAfterEOI(src.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
		images[i] = image
		total += len(image) + len(src.Path)
	}

	// 2. 拼接: 没有分隔符，下一张图的 SOI 就是边界
	out := make([]byte, 0, total)
	for i, src := range sources {
		out = append(out, images[i]...)
		out = append(out, src.Path...)
	}
	return out, nil
}
