package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jpegvault/pkg/container"
	"jpegvault/pkg/core"
	"jpegvault/pkg/storage/disk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var img = []byte{0xFF, 0xD8, 0x42, 0xFF, 0xD9}

func setupExporter(t *testing.T) (*Exporter, string) {
	t.Helper()
	root := t.TempDir()
	store, err := disk.NewAdapter(root)
	require.NoError(t, err)
	return NewExporter(store), root
}

func TestExportSegments(t *testing.T) {
	exp, root := setupExporter(t)

	segments := []container.Segment{
		{Path: "photo1.jpg", Image: img},
		{Path: "photo2.jpg", Image: img[:2]},
	}

	var seen []string
	n, err := exp.ExportSegments(context.Background(), segments, "extracted", func(target string, seg container.Segment) {
		seen = append(seen, target)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{filepath.Join("extracted", "photo1.jpg"), filepath.Join("extracted", "photo2.jpg")}, seen)

	data, err := os.ReadFile(filepath.Join(root, "extracted", "photo1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, img, data)
}

func TestExportSegments_Overwrites(t *testing.T) {
	exp, root := setupExporter(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "extracted"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "extracted", "a.jpg"), []byte("stale"), 0644))

	_, err := exp.ExportSegments(context.Background(), []container.Segment{{Path: "a.jpg", Image: img}}, "extracted", nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "extracted", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, img, data)
}

func TestExportSegments_StopsAtFirstFailure(t *testing.T) {
	exp, root := setupExporter(t)

	segments := []container.Segment{
		{Path: "ok.jpg", Image: img},
		{Path: "../escape.jpg", Image: img},
		{Path: "never.jpg", Image: img},
	}
	n, err := exp.ExportSegments(context.Background(), segments, "extracted", nil)
	assert.ErrorIs(t, err, ErrUnsafeName)
	assert.Equal(t, 1, n)

	// 前面的文件保留，后面的不再写出
	_, err = os.Stat(filepath.Join(root, "extracted", "ok.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "extracted", "never.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "escape.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestTargetPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Plain", "a.jpg", filepath.Join("extracted", "a.jpg"), false},
		{"Nested", "trip/a.jpg", filepath.Join("extracted", "trip", "a.jpg"), false},
		{"Absolute is nested", "/home/u/a.jpg", filepath.Join("extracted", "home", "u", "a.jpg"), false},
		{"Dot dot inside", "trip/../a.jpg", filepath.Join("extracted", "a.jpg"), false},
		{"Parent escape", "../a.jpg", "", true},
		{"Deep escape", "x/../../../etc/passwd", "", true},
		{"Dir itself", ".", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetPath("extracted", tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsafeName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintSegments(t *testing.T) {
	var buf bytes.Buffer
	infos := []core.SegmentInfo{
		core.NewSegmentInfo("photo1.jpg", img),
		core.NewSegmentInfo("photo2.jpg", bytes.Repeat([]byte{1}, 2048)),
	}
	require.NoError(t, PrintSegments(&buf, infos))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "DIGEST")
	assert.Contains(t, lines[1], "photo1.jpg")
	assert.Contains(t, lines[1], infos[0].Digest.Short())
	assert.Contains(t, lines[2], "2.0KB")
}

func TestFmtSize(t *testing.T) {
	assert.Equal(t, "5B", FmtSize(5))
	assert.Equal(t, "1.5KB", FmtSize(1536))
	assert.Equal(t, "2.00MB", FmtSize(2*1024*1024))
}
