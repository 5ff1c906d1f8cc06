package handlers

import (
	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
)

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	common.SendResponse(c, err, data)
}

type ContentParam struct {
	Content string `form:"content" json:"content"`
}

type LikeParam struct {
	ActionType string `query:"action_type" form:"action_type" json:"action_type"`
}

type PageParam struct {
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}
