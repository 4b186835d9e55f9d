package meta

import (
	"context"
	"fmt"
	"testing"

	"jpegvault/pkg/core"
	"jpegvault/pkg/types"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepo 构建隔离的测试环境
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	metaDB := NewWithConn(db)
	require.NoError(t, metaDB.AutoMigrate(&OperationModel{}))

	return NewRepository(metaDB)
}

// mustNewRecord 创建记录，如果失败直接终止测试
func mustNewRecord(t *testing.T, kind types.OpKind, target string, ts int64, paths ...string) *core.Record {
	t.Helper()
	var segs []core.SegmentInfo
	for _, p := range paths {
		segs = append(segs, core.NewSegmentInfo(p, []byte(p)))
	}
	rec, err := core.NewRecordAt(kind, target, segs, ts)
	require.NoError(t, err)
	return rec
}

// mustRecord 强制写入，失败则终止
func mustRecord(t *testing.T, repo *Repository, rec *core.Record, msgAndArgs ...any) {
	t.Helper()
	err := repo.RecordOperation(context.Background(), rec)
	require.NoError(t, err, msgAndArgs...)
}
