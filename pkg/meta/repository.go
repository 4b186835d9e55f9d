package meta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jpegvault/pkg/core"
	"jpegvault/pkg/types"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

var (
	ErrOperationNotFound = errors.New("operation not found in history")
	// ErrAmbiguousID 表示给出的 ID 前缀匹配到多条记录
	ErrAmbiguousID = errors.New("operation id prefix is ambiguous")
	// ErrCorruptRecord 表示存储的记录字节与主键哈希不一致
	ErrCorruptRecord = errors.New("record does not match its id")
)

// Repository 封装所有对 SQL 数据库的操作
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// RecordOperation 把 core.Record "投影" 到数据库中
// 以记录 ID 为主键，重复写入同一条记录不会产生副本
func (r *Repository) RecordOperation(ctx context.Context, rec *core.Record) error {
	segments := rec.Segments
	if segments == nil {
		segments = []core.SegmentInfo{}
	}
	segmentsJSON, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("failed to marshal segments: %w", err)
	}

	model := OperationModel{
		ID:           rec.ID().String(),
		Kind:         rec.Kind.String(),
		Target:       rec.Target,
		SegmentCount: len(rec.Segments),
		Segments:     datatypes.JSON(segmentsJSON),
		Timestamp:    rec.Timestamp,
		Record:       rec.Bytes(),
		CreatedAt:    time.Unix(0, rec.Timestamp),
	}

	err = r.db.GetConn().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}
	return nil
}

// GetOperation 按完整 ID 或唯一前缀 (例如 history 列表里的 8 位短 ID) 查找记录
func (r *Repository) GetOperation(ctx context.Context, id types.Hash) (*OperationModel, error) {
	if id.IsZero() || !isHex(id.String()) {
		return nil, fmt.Errorf("%q: %w", id, ErrOperationNotFound)
	}

	q := r.db.GetConn().WithContext(ctx)
	if id.IsValid() {
		q = q.Where("id = ?", id.String())
	} else {
		// 前缀只含十六进制字符，不会混入 LIKE 通配符
		q = q.Where("id LIKE ?", id.String()+"%")
	}

	var ops []OperationModel
	if err := q.Limit(2).Find(&ops).Error; err != nil {
		return nil, err
	}
	switch len(ops) {
	case 0:
		return nil, fmt.Errorf("%q: %w", id, ErrOperationNotFound)
	case 1:
		return &ops[0], nil
	default:
		return nil, fmt.Errorf("%q: %w", id, ErrAmbiguousID)
	}
}

func isHex(s string) bool {
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// ListOperations 按时间倒序返回最近的操作，kind 为空时不过滤
func (r *Repository) ListOperations(ctx context.Context, kind types.OpKind, limit int) ([]OperationModel, error) {
	var ops []OperationModel
	q := r.db.GetConn().WithContext(ctx).Order("timestamp DESC").Order("id")
	if kind != "" {
		q = q.Where("kind = ?", kind.String())
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&ops).Error
	return ops, err
}

// DecodeRecord 从存储的 CBOR 字节还原记录，并确认内容哈希仍然等于主键
func (m *OperationModel) DecodeRecord() (*core.Record, error) {
	rec, err := core.DecodeRecord(m.Record)
	if err != nil {
		return nil, fmt.Errorf("corrupted record %s: %w", m.ID, err)
	}
	if rec.ID().String() != m.ID {
		return nil, fmt.Errorf("record %s hashes to %s: %w", m.ID, rec.ID(), ErrCorruptRecord)
	}
	return rec, nil
}
