package utils

import (
	"strings"

	"github.com/bwmarrin/snowflake"

	"MediaHub.com/pkg/errno"
)

// IDGenerator 由存储层持有，所有实体 ID 都在写入时生成
type IDGenerator struct {
	node *snowflake.Node
}

func NewIDGenerator(node int64) (*IDGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &IDGenerator{node: n}, nil
}

func (g *IDGenerator) Next() int64 {
	return g.node.Generate().Int64()
}

// ParseID 校验外部传入的 ID 格式：十进制正整数，不合法时返回 InvalidArgument
func ParseID(raw, name string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errno.InvalidArgumentErr.WithMessage(name + " is required")
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id.Int64() <= 0 {
		return 0, errno.InvalidArgumentErr.WithMessage("Invalid " + name)
	}
	return id.Int64(), nil
}

// ParseOptionalID 空字符串表示未传，返回 0
func ParseOptionalID(raw, name string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return ParseID(raw, name)
}

func FormatID(id int64) string {
	return snowflake.ParseInt64(id).String()
}
