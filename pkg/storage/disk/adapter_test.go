package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"jpegvault/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskAdapter(t *testing.T) {
	// 1. 创建临时测试目录
	tmpDir := t.TempDir()
	store, err := NewAdapter(tmpDir)
	require.NoError(t, err)

	ctx := context.Background()

	// 2. 测试 WriteFile
	err = store.WriteFile(ctx, "hidden.jpg", []byte("hello world"))
	assert.NoError(t, err)

	// 验证文件是否真的存在于物理磁盘
	onDisk, err := os.ReadFile(filepath.Join(tmpDir, "hidden.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), onDisk)

	// 3. 测试 Exists
	exists, err := store.Exists(ctx, "hidden.jpg")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "nope.jpg")
	assert.NoError(t, err)
	assert.False(t, exists)

	// 4. 测试 ReadFile
	content, err := store.ReadFile(ctx, "hidden.jpg")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello world"), content)

	// 5. 覆盖写入
	require.NoError(t, store.WriteFile(ctx, "hidden.jpg", []byte("v2")))
	content, err = store.ReadFile(ctx, "hidden.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), content)

	// 临时文件不能残留
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDiskAdapter_ReadMissing(t *testing.T) {
	store, err := NewAdapter(t.TempDir())
	require.NoError(t, err)

	_, err = store.ReadFile(context.Background(), "missing.jpg")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDiskAdapter_AbsolutePath(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	store, err := NewAdapter(root)
	require.NoError(t, err)

	target := filepath.Join(other, "abs.jpg")
	require.NoError(t, store.WriteFile(context.Background(), target, []byte("x")))

	_, err = os.Stat(target)
	assert.NoError(t, err, "绝对路径不应该被拼接到 root 下")
}

func TestDiskAdapter_Mkdir(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewAdapter(tmpDir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Mkdir(ctx, "extracted"))
	require.NoError(t, store.Mkdir(ctx, "extracted"), "重复创建应该是幂等的")

	info, err := os.Stat(filepath.Join(tmpDir, "extracted"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// 非递归: 父目录不存在时报错
	assert.Error(t, store.Mkdir(ctx, "a/b/c"))
}

func TestDiskAdapter_WriteCreatesParents(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewAdapter(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.WriteFile(context.Background(), "extracted/photos/a.jpg", []byte("a")))
	_, err = os.Stat(filepath.Join(tmpDir, "extracted", "photos", "a.jpg"))
	assert.NoError(t, err)
}

func TestDiskAdapter_KeepsPermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewAdapter(tmpDir)
	require.NoError(t, err)

	target := filepath.Join(tmpDir, "photo.jpg")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0600))
	require.NoError(t, store.WriteFile(context.Background(), "photo.jpg", []byte("new")))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewAdapter_InvalidRoot(t *testing.T) {
	_, err := NewAdapter(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0644))
	_, err = NewAdapter(f)
	assert.Error(t, err)
}
