package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"jpegvault/pkg/types"

	"github.com/fxamacker/cbor/v2"
)

// 规范化 (Canonical) CBOR 编码选项
// 保证同一条记录无论在哪台机器上编码，都得到相同的字节和相同的 ID
var encOptions = cbor.EncOptions{
	// 1. 强制 Map Key 排序
	Sort: cbor.SortCanonical,

	// 2. 浮点数必须使用64位表示
	ShortestFloat: cbor.ShortestFloatNone,

	// 3. 时间格式化为 Unix 整数，禁止 Tag 0/1
	Time:    cbor.TimeUnix,
	TimeTag: cbor.EncTagNone,

	// 4. 禁止不定长编码
	IndefLength: cbor.IndefLengthForbidden,
}

// 全局复用的编码模式
var em, _ = encOptions.EncMode()

var decOptions = cbor.DecOptions{
	// 限制容器元素数量和嵌套深度，防止恶意构造的记录耗尽内存
	MaxArrayElements: 10000,
	MaxMapPairs:      10000,
	MaxNestedLevels:  100,

	IndefLength: cbor.IndefLengthForbidden,
	DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	TimeTag:     cbor.DecTagIgnored,
}

var dm, _ = decOptions.DecMode()

// CalculateHash 计算对象的 Hash 和序列化数据
func CalculateHash(v any) (types.Hash, []byte, error) {
	data, err := em.Marshal(v)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal object: %w", err)
	}

	hashBytes := sha256.Sum256(data)
	return types.Hash(hex.EncodeToString(hashBytes[:])), data, nil
}

// CalculateBlobHash 计算原始字节 (例如一张图片) 的 Hash
func CalculateBlobHash(data []byte) types.Hash {
	hashBytes := sha256.Sum256(data)
	return types.Hash(hex.EncodeToString(hashBytes[:]))
}

// DecodeObject 通用的解码函数
func DecodeObject(data []byte, v any) error {
	return dm.Unmarshal(data, v)
}
