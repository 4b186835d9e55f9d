// pkg/types/common.go
package types

// Hash 代表一段字节的 SHA256 Hex 摘要
// 这是一个“值对象”，应当是不可变的。
type Hash string

func (h Hash) String() string { return string(h) }

// 验证 Hash 合法性
func (h Hash) IsZero() bool  { return h == "" }
func (h Hash) IsValid() bool { return len(h) == 64 } // 简单的长度检查

// Short 返回前 8 位，用于表格输出
func (h Hash) Short() string {
	if len(h) < 8 {
		return string(h)
	}
	return string(h[:8])
}

// OpKind 标识一次被记录的操作 (hide / extract / savemessage / removemessage)
type OpKind string

const (
	OpHide          OpKind = "hide"
	OpExtract       OpKind = "extract"
	OpSaveMessage   OpKind = "savemessage"
	OpRemoveMessage OpKind = "removemessage"
)

func (k OpKind) String() string { return string(k) }
