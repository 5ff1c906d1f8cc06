// Package paginate 统一分页参数校验与分页结果结构
package paginate

import (
	"math"

	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/errno"
)

// Params 是校验后的分页参数，Page 从 1 开始
type Params struct {
	Page  int64
	Limit int64
}

// New 0 表示使用默认值，负数返回 InvalidArgument，limit 超过 maxLimit 时截断
func New(page, limit, defaultLimit, maxLimit int64) (Params, error) {
	if page < 0 {
		return Params{}, errno.InvalidArgumentErr.WithMessage("page must be a positive integer")
	}
	if limit < 0 {
		return Params{}, errno.InvalidArgumentErr.WithMessage("limit must be a positive integer")
	}
	if page == 0 {
		page = constants.DefaultPage
	}
	if defaultLimit <= 0 {
		defaultLimit = constants.DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = constants.MaxLimit
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{Page: page, Limit: limit}, nil
}

// Offset 溢出时返回 math.MaxInt64，调用方按越界页处理
func (p Params) Offset() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}

// Result 列表接口统一返回结构，Items 永远不为 nil
type Result[T any] struct {
	Items      []T   `json:"items"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewResult 由调用方传入同一过滤条件下的总数和当前页数据
func NewResult[T any](p Params, total int64, items []T) Result[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Result[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: TotalPages(total, p.Limit),
	}
}
