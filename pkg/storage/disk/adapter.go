package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"jpegvault/pkg/storage"
)

// Adapter 实现了 storage.Store 接口
type Adapter struct {
	rootPath string // 相对路径以它为基准，比如当前工作目录
}

// NewAdapter 创建一个新的磁盘存储适配器
func NewAdapter(root string) (*Adapter, error) {
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("storage root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage root %s is not a directory", root)
	}
	return &Adapter{rootPath: root}, nil
}

// Root 返回存储根目录
func (s *Adapter) Root() string { return s.rootPath }

// resolve 返回路径对应的物理位置
// 绝对路径原样使用，相对路径拼接到 root 下
func (s *Adapter) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.rootPath, path)
}

func (s *Adapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Adapter) WriteFile(ctx context.Context, path string, data []byte) error {
	targetPath := s.resolve(path)

	// 1. 准备目录
	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// 2. 原子写入 (Atomic Write)
	// 先写到同目录的临时文件，然后 Rename。
	// 这样目标文件要么是旧内容，要么是完整的新内容。
	tempFile, err := os.CreateTemp(dir, ".jv-tmp-*")
	if err != nil {
		return err
	}
	// 如果成功 Rename 了，这个删除会失败，无害
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil { // 必须先关闭才能 Rename
		return err
	}

	// 3. 保留已有文件的权限位，新文件用 0644
	mode := fs.FileMode(0644)
	if info, err := os.Stat(targetPath); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tempFile.Name(), mode); err != nil {
		return err
	}

	// 4. 移动到最终位置
	return os.Rename(tempFile.Name(), targetPath)
}

func (s *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(s.resolve(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Mkdir 只创建最后一级目录 (非递归)，已存在时直接返回
func (s *Adapter) Mkdir(ctx context.Context, path string) error {
	err := os.Mkdir(s.resolve(path), 0755)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	return err
}
