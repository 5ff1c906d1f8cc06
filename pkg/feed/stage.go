package feed

// StageKind 阶段类型是封闭集合，执行器只认识这里列出的类型
type StageKind string

const (
	StageTextSearch               StageKind = "textSearch"
	StageFilterPublished          StageKind = "filterPublished"
	StageFilterByOwner            StageKind = "filterByOwner"
	StageFilterByRef              StageKind = "filterByRef"
	StageSort                     StageKind = "sort"
	StageJoinOwnerProfile         StageKind = "joinOwnerProfile"
	StageJoinLikeCount            StageKind = "joinLikeCount"
	StageJoinCommentCount         StageKind = "joinCommentCount"
	StageJoinIsLikedByViewer      StageKind = "joinIsLikedByViewer"
	StageJoinSubscriberCount      StageKind = "joinSubscriberCount"
	StageJoinIsSubscribedByViewer StageKind = "joinIsSubscribedByViewer"
	StageJoinVideoTotals          StageKind = "joinVideoTotals"
	StageLimitLatestPerGroup      StageKind = "limitLatestPerGroup"
	StageProject                  StageKind = "project"
)

// filterByRef 可用的关联字段
const (
	RefID         = "id"
	RefChannel    = "channel"
	RefSubscriber = "subscriber"
	RefLikedBy    = "likedBy"
	RefVideo      = "video"
	RefPlaylist   = "playlist"
	RefUser       = "user"
)

// Stage 不同类型只使用其中部分字段
type Stage struct {
	Kind      StageKind
	Query     string
	Field     string
	Direction string
	ID        int64
	// filterPublished 中非 0 表示该用户自己的未发布视频同样可见
	Viewer int64
	N      int
	Fields []string
}

func (s Stage) isMatch() bool {
	switch s.Kind {
	case StageTextSearch, StageFilterPublished, StageFilterByOwner, StageFilterByRef:
		return true
	}
	return false
}

func (s Stage) isJoin() bool {
	switch s.Kind {
	case StageJoinOwnerProfile, StageJoinLikeCount, StageJoinCommentCount, StageJoinIsLikedByViewer,
		StageJoinSubscriberCount, StageJoinIsSubscribedByViewer, StageJoinVideoTotals, StageLimitLatestPerGroup:
		return true
	}
	return false
}

func TextSearch(query string) Stage { return Stage{Kind: StageTextSearch, Query: query} }

func FilterPublished() Stage { return Stage{Kind: StageFilterPublished} }

// FilterPublishedOrOwnedBy 已发布，或属于 viewer
func FilterPublishedOrOwnedBy(viewer int64) Stage {
	return Stage{Kind: StageFilterPublished, Viewer: viewer}
}

func FilterByOwner(id int64) Stage { return Stage{Kind: StageFilterByOwner, ID: id} }

func FilterByRef(field string, id int64) Stage {
	return Stage{Kind: StageFilterByRef, Field: field, ID: id}
}

func Sort(field, direction string) Stage {
	return Stage{Kind: StageSort, Field: field, Direction: direction}
}

func JoinOwnerProfile() Stage { return Stage{Kind: StageJoinOwnerProfile} }

func JoinLikeCount() Stage { return Stage{Kind: StageJoinLikeCount} }

func JoinCommentCount() Stage { return Stage{Kind: StageJoinCommentCount} }

func JoinIsLikedByViewer(viewer int64) Stage {
	return Stage{Kind: StageJoinIsLikedByViewer, Viewer: viewer}
}

func JoinSubscriberCount() Stage { return Stage{Kind: StageJoinSubscriberCount} }

func JoinIsSubscribedByViewer(viewer int64) Stage {
	return Stage{Kind: StageJoinIsSubscribedByViewer, Viewer: viewer}
}

func JoinVideoTotals() Stage { return Stage{Kind: StageJoinVideoTotals} }

func LimitLatestPerGroup(n int) Stage { return Stage{Kind: StageLimitLatestPerGroup, N: n} }

func Project(fields ...string) Stage { return Stage{Kind: StageProject, Fields: fields} }
