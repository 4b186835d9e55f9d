package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"jpegvault/pkg/app"
	"jpegvault/pkg/exporter"
	"jpegvault/pkg/ignore"
	"jpegvault/pkg/ingester"
	"jpegvault/pkg/meta"
	"jpegvault/pkg/storage/disk"

	"github.com/stretchr/testify/require"
)

// setupTestApp 是所有 Service 测试共享的基础设施初始化逻辑
// 返回构建好的 Service 和工作目录
func setupTestApp(t *testing.T, withHistory bool) (*VaultService, string) {
	t.Helper()
	root := t.TempDir()

	// 1. Store
	store, err := disk.NewAdapter(root)
	require.NoError(t, err)

	// 2. Ingester / Exporter
	matcher, err := ignore.NewMatcher(root, "hidden.jpg", "extracted")
	require.NoError(t, err)

	application := &app.App{
		Store: store,
		Ingester: ingester.NewIngester(store, ingester.Config{
			WalkRoot: root,
			Matcher:  matcher,
		}),
		Exporter:      exporter.NewExporter(store),
		ContainerName: "hidden.jpg",
		ExtractDir:    "extracted",
	}

	// 3. 可选的历史记录
	if withHistory {
		db, err := meta.NewDB(context.Background(), meta.Config{
			Driver: meta.DriverSQLite,
			Path:   filepath.Join(root, ".jv", "history.db"),
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		application.History = meta.NewRepository(db)
	}

	return NewVaultService(application), root
}

func makeJPEG(payload ...byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	b.Write(payload)
	b.Write([]byte{0xFF, 0xD9})
	return b.Bytes()
}

func mustWrite(t *testing.T, root, name string, data []byte) {
	t.Helper()
	full := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, data, 0644))
}

func mustRead(t *testing.T, root, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	return data
}
