package feed

type entityKind int

const (
	entityVideo entityKind = iota
	entityComment
	entityTweet
	entityUser
	entityPlaylist
)

// source 描述一种 feed 的数据来源：主表（关系类 feed 会内连接父表）以及各阶段对应的列
type source struct {
	table     string
	joins     []string
	rowID     string
	created   string
	entity    entityKind
	entityID  string
	owner     string
	published string
	// 父视频的作者列，filterPublished 的 Viewer 放行条件使用
	videoOwner string
	search     string
	refs       map[string]string
	sorts      map[string]string
}

var videoSorts = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
}

func withCreated(sorts map[string]string, created string) map[string]string {
	out := make(map[string]string, len(sorts))
	for k, v := range sorts {
		out[k] = v
	}
	out["createdAt"] = created
	return out
}

var (
	videoSource = &source{
		table:      "videos v",
		rowID:      "v.id",
		created:    "v.created_at",
		entity:     entityVideo,
		entityID:   "v.id",
		owner:      "v.owner_id",
		published:  "v.is_published",
		videoOwner: "v.owner_id",
		search:     "v.id",
		refs:       map[string]string{RefID: "v.id"},
		sorts:      videoSorts,
	}
	likedVideoSource = &source{
		table:      "likes l",
		joins:      []string{"JOIN videos v ON v.id = l.video_id"},
		rowID:      "l.id",
		created:    "l.created_at",
		entity:     entityVideo,
		entityID:   "v.id",
		published:  "v.is_published",
		videoOwner: "v.owner_id",
		search:     "v.id",
		refs:       map[string]string{RefLikedBy: "l.liked_by"},
		sorts:      withCreated(videoSorts, "l.created_at"),
	}
	playlistVideoSource = &source{
		table:      "playlist_videos pv",
		joins:      []string{"JOIN videos v ON v.id = pv.video_id"},
		rowID:      "pv.id",
		created:    "pv.created_at",
		entity:     entityVideo,
		entityID:   "v.id",
		published:  "v.is_published",
		videoOwner: "v.owner_id",
		refs:       map[string]string{RefPlaylist: "pv.playlist_id"},
		sorts:      withCreated(videoSorts, "pv.created_at"),
	}
	watchHistorySource = &source{
		table:      "watch_histories w",
		joins:      []string{"JOIN videos v ON v.id = w.video_id"},
		rowID:      "w.id",
		created:    "w.created_at",
		entity:     entityVideo,
		entityID:   "v.id",
		published:  "v.is_published",
		videoOwner: "v.owner_id",
		refs:       map[string]string{RefUser: "w.user_id"},
		sorts:      withCreated(videoSorts, "w.created_at"),
	}
	commentSource = &source{
		table:    "comments c",
		joins:    []string{"JOIN videos v ON v.id = c.video_id"},
		rowID:    "c.id",
		created:  "c.created_at",
		entity:   entityComment,
		entityID: "c.id",
		owner:    "c.owner_id",
		refs:     map[string]string{RefVideo: "c.video_id"},
		sorts:    map[string]string{"createdAt": "c.created_at"},
	}
	tweetSource = &source{
		table:    "tweets t",
		rowID:    "t.id",
		created:  "t.created_at",
		entity:   entityTweet,
		entityID: "t.id",
		owner:    "t.owner_id",
		refs:     map[string]string{RefID: "t.id"},
		sorts:    map[string]string{"createdAt": "t.created_at"},
	}
	subscriberSource = &source{
		table:    "subscriptions s",
		joins:    []string{"JOIN users u ON u.id = s.subscriber_id"},
		rowID:    "s.id",
		created:  "s.created_at",
		entity:   entityUser,
		entityID: "u.id",
		refs:     map[string]string{RefChannel: "s.channel_id"},
		sorts:    map[string]string{"createdAt": "s.created_at"},
	}
	subscribedChannelSource = &source{
		table:    "subscriptions s",
		joins:    []string{"JOIN users u ON u.id = s.channel_id"},
		rowID:    "s.id",
		created:  "s.created_at",
		entity:   entityUser,
		entityID: "u.id",
		refs:     map[string]string{RefSubscriber: "s.subscriber_id"},
		sorts:    map[string]string{"createdAt": "s.created_at"},
	}
	playlistSource = &source{
		table:    "playlists p",
		rowID:    "p.id",
		created:  "p.created_at",
		entity:   entityPlaylist,
		entityID: "p.id",
		owner:    "p.owner_id",
		refs:     map[string]string{RefID: "p.id"},
		sorts:    map[string]string{"createdAt": "p.created_at"},
	}
)

// project 阶段允许选择的列，敏感列（密码、对象存储 ID）不在其中
var projectable = map[entityKind]map[string]struct{}{
	entityVideo: set("id", "owner_id", "title", "description", "video_url", "thumbnail_url", "duration",
		"views", "is_published", "likes_count", "comments_count", "created_at", "updated_at"),
	entityComment:  set("id", "video_id", "owner_id", "content", "likes_count", "created_at", "updated_at"),
	entityTweet:    set("id", "owner_id", "content", "likes_count", "created_at", "updated_at"),
	entityUser:     set("id", "user_name", "email", "full_name", "avatar_url", "cover_image_url", "created_at"),
	entityPlaylist: set("id", "owner_id", "name", "description", "created_at", "updated_at"),
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

var (
	videoCardFields = []string{"id", "owner_id", "title", "description", "video_url", "thumbnail_url",
		"duration", "views", "is_published", "created_at"}
	videoCounterFields = append(append([]string{}, videoCardFields...), "likes_count", "comments_count")
	commentFields      = []string{"id", "video_id", "owner_id", "content", "likes_count", "created_at", "updated_at"}
	tweetFields        = []string{"id", "owner_id", "content", "likes_count", "created_at", "updated_at"}
	profileFields      = []string{"id", "user_name", "full_name", "avatar_url"}
	playlistFields     = []string{"id", "owner_id", "name", "description", "created_at", "updated_at"}
)
