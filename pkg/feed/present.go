package feed

import (
	"time"

	"MediaHub.com/cmd/model"
)

// Profile 关联出来的用户信息，不存在时整体为 null
type Profile struct {
	ID        int64  `json:"id,string"`
	UserName  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarUrl string `json:"avatarUrl"`
}

type VideoCard struct {
	ID          int64     `json:"id,string"`
	OwnerID     int64     `json:"ownerId,string"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VideoItem 用于首页、点赞列表、播放列表和观看历史
type VideoItem struct {
	VideoCard
	Owner *Profile `json:"owner"`
}

type ChannelVideo struct {
	VideoCard
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
}

type OwnerChannel struct {
	Profile
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

type VideoDetail struct {
	VideoCard
	UpdatedAt     time.Time     `json:"updatedAt"`
	Owner         *OwnerChannel `json:"owner"`
	LikesCount    int64         `json:"likesCount"`
	CommentsCount int64         `json:"commentsCount"`
	IsLiked       bool          `json:"isLiked"`
}

type CommentItem struct {
	ID         int64     `json:"id,string"`
	VideoID    int64     `json:"videoId,string"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Owner      *Profile  `json:"owner"`
	LikesCount int64     `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
}

type TweetItem struct {
	ID         int64     `json:"id,string"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Owner      *Profile  `json:"owner"`
	LikesCount int64     `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
}

// SubscriberItem IsSubscribed 表示 viewer 是否也订阅了这个订阅者
type SubscriberItem struct {
	Profile
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

type ChannelItem struct {
	Profile
	SubscribersCount int64      `json:"subscribersCount"`
	LatestVideo      *VideoCard `json:"latestVideo"`
}

type PlaylistItem struct {
	ID          int64     `json:"id,string"`
	OwnerID     int64     `json:"ownerId,string"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalVideos int64     `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
}

// record 是一行结果在展示前的全部数据
type record struct {
	video    *model.Video
	comment  *model.Comment
	tweet    *model.Tweet
	user     *model.User
	playlist *model.Playlist

	owner       *model.User
	subscribers int64
	subscribed  bool
	liked       bool
	latest      []*model.Video
	totalVideos int64
	totalViews  int64
}

func toProfile(u *model.User) *Profile {
	if u == nil {
		return nil
	}
	return &Profile{ID: u.ID, UserName: u.UserName, FullName: u.FullName, AvatarUrl: u.AvatarUrl}
}

func toVideoCard(v *model.Video) VideoCard {
	return VideoCard{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoUrl,
		Thumbnail:   v.ThumbnailUrl,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
	}
}

// present 按 kind 把 record 转成对外结构
func present(p *Pipeline, r *record) interface{} {
	switch p.Kind {
	case GlobalVideos, LikedVideos, PlaylistVideos, WatchHistory:
		return &VideoItem{VideoCard: toVideoCard(r.video), Owner: toProfile(r.owner)}

	case ChannelVideos:
		return &ChannelVideo{
			VideoCard:     toVideoCard(r.video),
			LikesCount:    r.video.LikesCount,
			CommentsCount: r.video.CommentsCount,
		}

	case VideoDetailKind:
		d := &VideoDetail{
			VideoCard:     toVideoCard(r.video),
			UpdatedAt:     r.video.UpdatedAt,
			LikesCount:    r.video.LikesCount,
			CommentsCount: r.video.CommentsCount,
			IsLiked:       r.liked,
		}
		if prof := toProfile(r.owner); prof != nil {
			d.Owner = &OwnerChannel{Profile: *prof, SubscribersCount: r.subscribers, IsSubscribed: r.subscribed}
		}
		return d

	case VideoComments:
		c := r.comment
		return &CommentItem{
			ID:         c.ID,
			VideoID:    c.VideoID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
			Owner:      toProfile(r.owner),
			LikesCount: c.LikesCount,
			IsLiked:    r.liked,
		}

	case UserTweets:
		t := r.tweet
		return &TweetItem{
			ID:         t.ID,
			Content:    t.Content,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  t.UpdatedAt,
			Owner:      toProfile(r.owner),
			LikesCount: t.LikesCount,
			IsLiked:    r.liked,
		}

	case SubscriberList:
		return &SubscriberItem{Profile: *toProfile(r.user), SubscribersCount: r.subscribers, IsSubscribed: r.subscribed}

	case SubscribedChannelList:
		item := &ChannelItem{Profile: *toProfile(r.user), SubscribersCount: r.subscribers}
		// 一对多的关联结果收敛为单个对象或 null
		if len(r.latest) > 0 {
			card := toVideoCard(r.latest[0])
			item.LatestVideo = &card
		}
		return item

	case UserPlaylists:
		pl := r.playlist
		return &PlaylistItem{
			ID:          pl.ID,
			OwnerID:     pl.OwnerID,
			Name:        pl.Name,
			Description: pl.Description,
			TotalVideos: r.totalVideos,
			TotalViews:  r.totalViews,
			CreatedAt:   pl.CreatedAt,
			UpdatedAt:   pl.UpdatedAt,
		}
	}
	return nil
}
