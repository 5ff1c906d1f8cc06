package constants

const (
	DataFormate = "2006-01-02 15:04:05"

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50

	// 上下文中保存当前登录用户 ID 的 key
	IdentityKey = "user_id"

	// 点赞的三种业务对象
	LikeTargetVideo   = "video"
	LikeTargetComment = "comment"
	LikeTargetTweet   = "tweet"
	// 订阅事件的目标类型
	TargetChannel = "channel"

	ActionToggle = "toggle"
	ActionLike   = "like"
	ActionUnlike = "unlike"

	// 视频排序字段
	SortByCreatedAt = "createdAt"
	SortByViews     = "views"
	SortByDuration  = "duration"
	SortAsc         = "asc"
	SortDesc        = "desc"
)
