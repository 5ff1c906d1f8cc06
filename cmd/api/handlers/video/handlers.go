package handlers

import (
	"github.com/cloudwego/hertz/pkg/app"

	"MediaHub.com/cmd/api/handlers/common"
)

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	common.SendResponse(c, err, data)
}

type ListVideosParam struct {
	Query    string `query:"query"`
	UserId   string `query:"userId"`
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}

type PublishParam struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	IsPublished *bool  `form:"isPublished"`
}

type UpdateVideoParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type PlaylistParam struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

type PageParam struct {
	SortBy   string `query:"sortBy"`
	SortType string `query:"sortType"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}
