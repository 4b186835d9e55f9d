// Package marker 在字节流中定位 JPEG 的 SOI / EOI 标记对。
// 它只做字节匹配，不校验 JPEG 结构。
package marker

import (
	"bytes"
	"errors"
	"fmt"
)

// Size 是一个标记的字节长度
const Size = 2

// Marker 是一个 2 字节的 JPEG 标记 (0xFF + 类型)
type Marker [Size]byte

var (
	// SOI: Start Of Image
	SOI = Marker{0xFF, 0xD8}
	// EOI: End Of Image, 兼容的解码器读到这里就停止
	EOI = Marker{0xFF, 0xD9}
)

// ErrNoEOI 表示缓冲区里找不到 EOI，即不是可识别的 JPEG
var ErrNoEOI = errors.New("EOI marker not found (not a JPEG?)")

func (m Marker) String() string {
	switch m {
	case SOI:
		return "SOI"
	case EOI:
		return "EOI"
	default:
		return fmt.Sprintf("%02X%02X", m[0], m[1])
	}
}

// FindFirst 返回 m 第一次出现的位置
func FindFirst(buf []byte, m Marker) (int, bool) {
	return FindFrom(buf, m, 0)
}

// FindFrom 从 from 开始查找，返回的是相对 buf 起点的绝对偏移
// 解码器用它推进游标，避免每段都从头扫描
func FindFrom(buf []byte, m Marker, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	if from >= len(buf) {
		return -1, false
	}
	idx := bytes.Index(buf[from:], m[:])
	if idx < 0 {
		return -1, false
	}
	return from + idx, true
}

// FindLast 返回 m 最后一次出现的位置
func FindLast(buf []byte, m Marker) (int, bool) {
	idx := bytes.LastIndex(buf, m[:])
	if idx < 0 {
		return -1, false
	}
	return idx, true
}

// CutAfterEOI 在第一个 EOI 处切开:
// image 包含 EOI 本身，trailer 是 EOI 之后的全部字节 (可能为空)
// 两者都是 buf 的子切片，调用者不应修改
func CutAfterEOI(buf []byte) (image, trailer []byte, err error) {
	e, ok := FindFirst(buf, EOI)
	if !ok {
		return nil, nil, ErrNoEOI
	}
	end := e + Size
	return buf[:end:end], buf[end:], nil
}
