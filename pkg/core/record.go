package core

import (
	"fmt"
	"sync/atomic"
	"time"

	"jpegvault/pkg/types"
)

// SegmentInfo 描述容器里的一张图片 (不含图片本身)
type SegmentInfo struct {
	Path   string     `cbor:"p" json:"path"`
	Size   int64      `cbor:"s" json:"size"`
	Digest types.Hash `cbor:"d" json:"digest"`
}

// NewSegmentInfo 根据路径和图片字节生成描述
func NewSegmentInfo(path string, image []byte) SegmentInfo {
	return SegmentInfo{
		Path:   path,
		Size:   int64(len(image)),
		Digest: CalculateBlobHash(image),
	}
}

// Record 是一次操作的不可变记录 (写入 history)
// ID = sha256(canonical CBOR)，相同内容的记录 ID 相同
type Record struct {
	Kind      types.OpKind  `cbor:"k"`
	Target    string        `cbor:"t"` // 被写入或读取的文件
	Segments  []SegmentInfo `cbor:"g,omitempty"`
	Timestamp int64         `cbor:"ts"` // Unix 纳秒

	// 缓存字段，不参与序列化
	hash types.Hash
	data []byte
}

// lastStamp 是本进程发出的最后一个时间戳
var lastStamp atomic.Int64

// nextStamp 返回严格递增的纳秒时间戳
// 同一进程内两次相同的操作不会得到相同的记录 ID
func nextStamp() int64 {
	for {
		now := time.Now().UnixNano()
		last := lastStamp.Load()
		if now <= last {
			now = last + 1
		}
		if lastStamp.CompareAndSwap(last, now) {
			return now
		}
	}
}

// NewRecord 创建记录并立即计算 ID
func NewRecord(kind types.OpKind, target string, segments []SegmentInfo) (*Record, error) {
	return NewRecordAt(kind, target, segments, nextStamp())
}

// NewRecordAt 与 NewRecord 相同，但时间戳由调用者指定
func NewRecordAt(kind types.OpKind, target string, segments []SegmentInfo, ts int64) (*Record, error) {
	r := &Record{
		Kind:      kind,
		Target:    target,
		Segments:  segments,
		Timestamp: ts,
	}
	if err := r.seal(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) seal() error {
	hash, data, err := CalculateHash(r)
	if err != nil {
		return fmt.Errorf("failed to seal record: %w", err)
	}
	r.hash = hash
	r.data = data
	return nil
}

func (r *Record) ID() types.Hash { return r.hash }
func (r *Record) Bytes() []byte  { return r.data }

// DecodeRecord 从 CBOR 字节还原记录，并重新计算 ID
func DecodeRecord(data []byte) (*Record, error) {
	var r Record
	if err := DecodeObject(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if err := r.seal(); err != nil {
		return nil, err
	}
	return &r, nil
}
