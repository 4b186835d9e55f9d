package message

import (
	"testing"

	"jpegvault/pkg/marker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var photo = []byte{0xFF, 0xD8, 0xE0, 0x00, 0x10, 0xFF, 0xD9}

// mustWrite 写入消息，失败直接终止
func mustWrite(t *testing.T, buf []byte, msg string) []byte {
	t.Helper()
	out, err := Write(buf, []byte(msg))
	require.NoError(t, err)
	return out
}

func TestRead_NoMessage(t *testing.T) {
	_, err := Read(photo)
	assert.ErrorIs(t, err, ErrNoMessage)
}

func TestWriteThenRead(t *testing.T) {
	out := mustWrite(t, photo, "hello")

	msg, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(msg))

	// 输入缓冲区不能被修改
	assert.Equal(t, []byte{0xFF, 0xD8, 0xE0, 0x00, 0x10, 0xFF, 0xD9}, photo)
}

func TestWrite_Overwrites(t *testing.T) {
	out := mustWrite(t, mustWrite(t, photo, "a"), "b")

	msg, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, "b", string(msg), "旧消息必须被整体替换，不能累加")
	assert.Len(t, out, len(photo)+1)
}

func TestErase(t *testing.T) {
	out, err := Erase(mustWrite(t, photo, "hello"))
	require.NoError(t, err)
	assert.Equal(t, photo, out)

	_, err = Read(out)
	assert.ErrorIs(t, err, ErrNoMessage)
}

func TestErase_AlreadyClean(t *testing.T) {
	out, err := Erase(photo)
	require.NoError(t, err)
	assert.Equal(t, photo, out)
}

func TestMessage_KeepsBytesAfterSecondEOI(t *testing.T) {
	// 消息本身包含 FF D9 时，槽从第一个 EOI 之后开始
	out := mustWrite(t, photo, "x\xff\xd9y")
	msg, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, "x\xff\xd9y", string(msg))
}

func TestCodec_MissingEOI(t *testing.T) {
	broken := []byte{0xFF, 0xD8, 0x01, 0x02}

	tests := []struct {
		name string
		fn   func([]byte) error
	}{
		{"Read", func(b []byte) error { _, err := Read(b); return err }},
		{"Write", func(b []byte) error { _, err := Write(b, []byte("m")); return err }},
		{"Erase", func(b []byte) error { _, err := Erase(b); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(broken), marker.ErrNoEOI)
		})
	}
}
