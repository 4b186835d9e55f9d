// Package message 把单张图片 EOI 之后的字节当作一个消息槽来读写。
// 槽没有长度前缀，到文件末尾为止。写入总是整体覆盖。
package message

import (
	"errors"

	"jpegvault/pkg/marker"
)

// ErrNoMessage 不是失败: EOI 之后没有任何字节
var ErrNoMessage = errors.New("there is no message in this photo")

// Read 返回 EOI 之后的消息字节
func Read(buf []byte) ([]byte, error) {
	_, trailer, err := marker.CutAfterEOI(buf)
	if err != nil {
		return nil, err
	}
	if len(trailer) == 0 {
		return nil, ErrNoMessage
	}
	return trailer, nil
}

// Write 返回新的缓冲区: 图片部分 + msg，原有消息被丢弃
func Write(buf []byte, msg []byte) ([]byte, error) {
	image, _, err := marker.CutAfterEOI(buf)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(image)+len(msg))
	out = append(out, image...)
	return append(out, msg...), nil
}

// Erase 返回只包含图片部分的新缓冲区
func Erase(buf []byte) ([]byte, error) {
	return Write(buf, nil)
}
