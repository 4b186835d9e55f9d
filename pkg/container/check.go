package container

import "jpegvault/pkg/marker"

// IsContainer 判断缓冲区里是否还藏有其他图片:
// 如果最后一个 SOI 就在开头，说明整个文件只有一张图
func IsContainer(buf []byte) bool {
	last, ok := marker.FindLast(buf, marker.SOI)
	return ok && last != 0
}
