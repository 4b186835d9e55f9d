package container

import (
	"bytes"
	"fmt"
)

// makeJPEG 构造一个最小的 "JPEG": SOI + payload + EOI
// 足够用来测试标记扫描，不是合法的图像数据
func makeJPEG(payload ...byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	b.Write(payload)
	b.Write([]byte{0xFF, 0xD9})
	return b.Bytes()
}

// withTrailer 在图片后面追加一段已有的隐藏数据
func withTrailer(img []byte, trailer string) []byte {
	out := append([]byte{}, img...)
	return append(out, trailer...)
}

func makeSources(n int) []Source {
	sources := make([]Source, n)
	for i := range sources {
		sources[i] = Source{
			Path: fmt.Sprintf("photo%d.jpg", i+1),
			Data: makeJPEG(0xE0, byte(i), 0x10, 0x4A, 0x46),
		}
	}
	return sources
}
