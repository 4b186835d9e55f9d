// Package container 实现多图容器格式:
// 每个图片截断到第一个 EOI，后面紧跟它的原始路径，再接下一个图片的 SOI。
// 格式里没有长度前缀，边界完全由标记位置推断。
//
// 已知限制: 如果路径字节里恰好包含 FF D8，解码时会被误认为下一张图的开头。
// 为了兼容已有的容器文件，这里不改变格式。
package container

import "errors"

var (
	ErrNoSources = errors.New("no source images given")
	// ErrEmptyName 表示某个段的路径为空，无法落盘
	ErrEmptyName = errors.New("segment has an empty name")
	// ErrNothingHidden 不是失败，表示缓冲区里只有一张图
	ErrNothingHidden = errors.New("no hidden photo inside")
)

// Source 是编码器的输入: 用户给出的路径 + 读到的文件内容
type Source struct {
	Path string
	Data []byte
}

// Segment 是解码出的一段: Image 以 EOI 结尾，Path 原样保留
type Segment struct {
	Path  string
	Image []byte
}

func (s Segment) Size() int64 { return int64(len(s.Image)) }
