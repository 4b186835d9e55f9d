package meta

import (
	"time"

	"gorm.io/datatypes"
)

// OperationModel 是 core.Record 在关系型数据库中的投影
// 用于 `jv history` 按时间、类型查询
type OperationModel struct {
	// ID 是记录的内容哈希 (canonical CBOR 的 sha256)
	ID string `gorm:"primaryKey;type:char(64)"`

	Kind   string `gorm:"index;type:varchar(32)"`
	Target string `gorm:"type:text"`

	// SegmentCount 冗余存储，列表时不必解析 JSON
	SegmentCount int

	// Segments: [{"path": "...", "size": 1, "digest": "..."}]
	Segments datatypes.JSON

	// Record 是 core.Record 的 canonical CBOR 字节，用于详情查看时校验
	Record []byte

	Timestamp int64 `gorm:"index"` // Unix 纳秒
	CreatedAt time.Time
}

// TableName 强制指定表名
func (OperationModel) TableName() string {
	return "operations"
}
