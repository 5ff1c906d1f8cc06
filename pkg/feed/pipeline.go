// Package feed 把列表和详情读取描述成由阶段组成的流水线，Build 负责组装，Executor 负责执行
package feed

import (
	"strings"

	"MediaHub.com/pkg/constants"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/paginate"
)

type Kind string

const (
	GlobalVideos          Kind = "globalVideos"
	ChannelVideos         Kind = "channelVideos"
	ChannelStatsKind      Kind = "channelStats"
	VideoDetailKind       Kind = "videoDetail"
	SubscriberList        Kind = "subscriberList"
	SubscribedChannelList Kind = "subscribedChannelList"
	LikedVideos           Kind = "likedVideos"
	VideoComments         Kind = "videoComments"
	PlaylistVideos        Kind = "playlistVideos"
	WatchHistory          Kind = "watchHistory"
	UserPlaylists         Kind = "userPlaylists"
	UserTweets            Kind = "userTweets"
)

type shape int

const (
	shapeList shape = iota
	shapeOne
	shapeAggregate
)

// Params 各 kind 只读取自己需要的字段，Viewer 为 0 表示匿名
type Params struct {
	Viewer        int64
	Query         string
	OwnerID       int64
	ChannelID     int64
	SubscriberID  int64
	UserID        int64
	VideoID       int64
	PlaylistID    int64
	SortBy        string
	SortType      string
	ViewerIsOwner bool
	Page          paginate.Params
}

type Pipeline struct {
	Kind   Kind
	Stages []Stage
	Page   paginate.Params
	Viewer int64

	source *source
	shape  shape
	// videoDetail 读取成功后的副作用需要视频 ID
	videoID int64
}

func (p *Pipeline) Has(kind StageKind) bool {
	_, ok := p.stage(kind)
	return ok
}

func (p *Pipeline) stage(kind StageKind) (Stage, bool) {
	for _, s := range p.Stages {
		if s.Kind == kind {
			return s, true
		}
	}
	return Stage{}, false
}

// userSort 校验调用方传入的排序参数，空值使用 createdAt desc
func userSort(sortBy, sortType string) (Stage, error) {
	if sortBy == "" {
		sortBy = constants.SortByCreatedAt
	}
	if sortType == "" {
		sortType = constants.SortDesc
	}
	sortType = strings.ToLower(sortType)
	switch sortBy {
	case constants.SortByCreatedAt, constants.SortByViews, constants.SortByDuration:
	default:
		return Stage{}, errno.InvalidArgumentErr.WithMessage("Invalid sortBy field: " + sortBy)
	}
	if sortType != constants.SortAsc && sortType != constants.SortDesc {
		return Stage{}, errno.InvalidArgumentErr.WithMessage("Invalid sortType: " + sortType)
	}
	return Sort(sortBy, sortType), nil
}

func requireID(id int64, name string) error {
	if id <= 0 {
		return errno.InvalidArgumentErr.WithMessage(name + " is required")
	}
	return nil
}

// Build 按 kind 组装阶段列表并校验
func Build(kind Kind, params Params) (*Pipeline, error) {
	p := &Pipeline{Kind: kind, Page: params.Page, Viewer: params.Viewer, shape: shapeList}
	if p.Page.Page == 0 {
		p.Page.Page = constants.DefaultPage
	}
	if p.Page.Limit == 0 {
		p.Page.Limit = constants.DefaultLimit
	}

	switch kind {
	case GlobalVideos:
		sort, err := userSort(params.SortBy, params.SortType)
		if err != nil {
			return nil, err
		}
		p.source = videoSource
		if q := strings.TrimSpace(params.Query); q != "" {
			p.Stages = append(p.Stages, TextSearch(q))
		}
		p.Stages = append(p.Stages, FilterPublished())
		if params.OwnerID != 0 {
			p.Stages = append(p.Stages, FilterByOwner(params.OwnerID))
		}
		p.Stages = append(p.Stages, sort, JoinOwnerProfile(), Project(videoCardFields...))

	case ChannelVideos:
		if err := requireID(params.ChannelID, "channelId"); err != nil {
			return nil, err
		}
		sort, err := userSort(params.SortBy, params.SortType)
		if err != nil {
			return nil, err
		}
		p.source = videoSource
		p.Stages = append(p.Stages, FilterByOwner(params.ChannelID))
		if !params.ViewerIsOwner {
			p.Stages = append(p.Stages, FilterPublished())
		}
		p.Stages = append(p.Stages, sort, JoinLikeCount(), JoinCommentCount(), Project(videoCounterFields...))

	case ChannelStatsKind:
		if err := requireID(params.ChannelID, "channelId"); err != nil {
			return nil, err
		}
		p.source = videoSource
		p.shape = shapeAggregate
		p.Stages = []Stage{
			FilterByOwner(params.ChannelID),
			JoinSubscriberCount(),
			JoinLikeCount(),
			Project("views", "likes_count"),
		}

	case VideoDetailKind:
		if err := requireID(params.VideoID, "videoId"); err != nil {
			return nil, err
		}
		p.source = videoSource
		p.shape = shapeOne
		p.videoID = params.VideoID
		p.Page = paginate.Params{Page: 1, Limit: 1}
		p.Stages = []Stage{
			FilterByRef(RefID, params.VideoID),
			FilterPublishedOrOwnedBy(params.Viewer),
			JoinOwnerProfile(),
			JoinSubscriberCount(),
			JoinIsSubscribedByViewer(params.Viewer),
			JoinLikeCount(),
			JoinCommentCount(),
			JoinIsLikedByViewer(params.Viewer),
			Project(append(append([]string{}, videoCounterFields...), "updated_at")...),
		}

	case SubscriberList:
		if err := requireID(params.ChannelID, "channelId"); err != nil {
			return nil, err
		}
		p.source = subscriberSource
		p.Stages = []Stage{
			FilterByRef(RefChannel, params.ChannelID),
			Sort(constants.SortByCreatedAt, constants.SortDesc),
			JoinSubscriberCount(),
			JoinIsSubscribedByViewer(params.Viewer),
			Project(profileFields...),
		}

	case SubscribedChannelList:
		if err := requireID(params.SubscriberID, "subscriberId"); err != nil {
			return nil, err
		}
		p.source = subscribedChannelSource
		p.Stages = []Stage{
			FilterByRef(RefSubscriber, params.SubscriberID),
			Sort(constants.SortByCreatedAt, constants.SortDesc),
			JoinSubscriberCount(),
			LimitLatestPerGroup(1),
			Project(profileFields...),
		}

	case LikedVideos:
		if err := requireID(params.UserID, "userId"); err != nil {
			return nil, err
		}
		sort, err := userSort(params.SortBy, params.SortType)
		if err != nil {
			return nil, err
		}
		p.source = likedVideoSource
		p.Stages = []Stage{
			FilterByRef(RefLikedBy, params.UserID),
			FilterPublished(),
			sort,
			JoinOwnerProfile(),
			Project(videoCardFields...),
		}

	case VideoComments:
		if err := requireID(params.VideoID, "videoId"); err != nil {
			return nil, err
		}
		p.source = commentSource
		p.Stages = []Stage{
			FilterByRef(RefVideo, params.VideoID),
			Sort(constants.SortByCreatedAt, constants.SortDesc),
			JoinOwnerProfile(),
			JoinLikeCount(),
			JoinIsLikedByViewer(params.Viewer),
			Project(commentFields...),
		}

	case PlaylistVideos:
		if err := requireID(params.PlaylistID, "playlistId"); err != nil {
			return nil, err
		}
		p.source = playlistVideoSource
		p.Stages = []Stage{
			FilterByRef(RefPlaylist, params.PlaylistID),
			FilterPublishedOrOwnedBy(params.Viewer),
			Sort(constants.SortByCreatedAt, constants.SortAsc),
			JoinOwnerProfile(),
			Project(videoCardFields...),
		}

	case WatchHistory:
		if err := requireID(params.UserID, "userId"); err != nil {
			return nil, err
		}
		p.source = watchHistorySource
		p.Stages = []Stage{
			FilterByRef(RefUser, params.UserID),
			FilterPublishedOrOwnedBy(params.UserID),
			Sort(constants.SortByCreatedAt, constants.SortAsc),
			JoinOwnerProfile(),
			Project(videoCardFields...),
		}

	case UserPlaylists:
		if err := requireID(params.UserID, "userId"); err != nil {
			return nil, err
		}
		p.source = playlistSource
		p.Stages = []Stage{
			FilterByOwner(params.UserID),
			Sort(constants.SortByCreatedAt, constants.SortDesc),
			JoinVideoTotals(),
			Project(playlistFields...),
		}

	case UserTweets:
		if err := requireID(params.UserID, "userId"); err != nil {
			return nil, err
		}
		p.source = tweetSource
		p.Stages = []Stage{
			FilterByOwner(params.UserID),
			Sort(constants.SortByCreatedAt, constants.SortDesc),
			JoinOwnerProfile(),
			JoinLikeCount(),
			JoinIsLikedByViewer(params.Viewer),
			Project(tweetFields...),
		}

	default:
		return nil, errno.InvalidArgumentErr.WithMessage("unknown feed kind " + string(kind))
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// validate 检查阶段顺序以及字段是否属于当前数据源
func (p *Pipeline) validate() error {
	firstJoin := -1
	for i, s := range p.Stages {
		if s.isJoin() && firstJoin < 0 {
			firstJoin = i
		}
		switch s.Kind {
		case StageTextSearch:
			if i != 0 {
				return errno.InvalidArgumentErr.WithMessage("textSearch must be the first stage")
			}
			if p.source.search == "" {
				return errno.InvalidArgumentErr.WithMessage("textSearch is not supported by " + string(p.Kind))
			}
		case StageFilterPublished:
			if p.source.published == "" {
				return errno.InvalidArgumentErr.WithMessage("filterPublished is not supported by " + string(p.Kind))
			}
			if firstJoin >= 0 {
				return errno.InvalidArgumentErr.WithMessage("filterPublished must precede every join")
			}
		case StageFilterByOwner:
			if p.source.owner == "" {
				return errno.InvalidArgumentErr.WithMessage("filterByOwner is not supported by " + string(p.Kind))
			}
		case StageFilterByRef:
			if _, ok := p.source.refs[s.Field]; !ok {
				return errno.InvalidArgumentErr.WithMessage("unknown reference field " + s.Field)
			}
		case StageSort:
			if _, ok := p.source.sorts[s.Field]; !ok {
				return errno.InvalidArgumentErr.WithMessage("Invalid sortBy field: " + s.Field)
			}
			if s.Direction != constants.SortAsc && s.Direction != constants.SortDesc {
				return errno.InvalidArgumentErr.WithMessage("Invalid sortType: " + s.Direction)
			}
		case StageLimitLatestPerGroup:
			if s.N < 1 {
				return errno.InvalidArgumentErr.WithMessage("limitLatestPerGroup needs n >= 1")
			}
		case StageProject:
			allowed := projectable[p.source.entity]
			for _, f := range s.Fields {
				if _, ok := allowed[f]; !ok {
					return errno.InvalidArgumentErr.WithMessage("field " + f + " cannot be projected")
				}
			}
		}
	}
	if p.shape == shapeList && !p.Has(StageSort) {
		p.Stages = append(p.Stages, Sort(constants.SortByCreatedAt, constants.SortDesc))
	}
	return nil
}

// Kinds 返回每个 kind 的阶段类型序列，便于检查组装结果
func (p *Pipeline) Kinds() []StageKind {
	out := make([]StageKind, 0, len(p.Stages))
	for _, s := range p.Stages {
		out = append(out, s.Kind)
	}
	return out
}
