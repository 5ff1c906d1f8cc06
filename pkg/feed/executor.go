package feed

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/dal/db"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/paginate"
	"MediaHub.com/pkg/search"
)

// Executor 执行顺序：匹配 → 计数 → 排序 → 分页 → 取实体 → 批量关联 → 展示
type Executor struct {
	store    *db.Store
	searcher search.Searcher
	maxHits  int
}

func NewExecutor(store *db.Store, searcher search.Searcher, maxHits int) *Executor {
	if maxHits <= 0 {
		maxHits = 1000
	}
	return &Executor{store: store, searcher: searcher, maxHits: maxHits}
}

// Run 执行列表类 pipeline
func (e *Executor) Run(ctx context.Context, p *Pipeline) (paginate.Result[interface{}], error) {
	if p.shape != shapeList {
		return paginate.Result[interface{}]{}, errno.InvalidArgumentErr.WithMessage(string(p.Kind) + " is not a list feed")
	}
	records, total, err := e.fetch(ctx, p)
	if err != nil {
		return paginate.Result[interface{}]{}, err
	}
	items := make([]interface{}, 0, len(records))
	for _, r := range records {
		items = append(items, present(p, r))
	}
	return paginate.NewResult(p.Page, total, items), nil
}

// One 执行详情类 pipeline，不存在时返回 NotFound。videoDetail 成功后增加播放量并写入观看历史
func (e *Executor) One(ctx context.Context, p *Pipeline) (interface{}, error) {
	if p.shape != shapeOne {
		return nil, errno.InvalidArgumentErr.WithMessage(string(p.Kind) + " is not a single-item feed")
	}
	records, _, err := e.fetch(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}
	out := present(p, records[0])
	if p.Kind == VideoDetailKind {
		e.afterVideoRead(ctx, p)
	}
	return out, nil
}

func (e *Executor) afterVideoRead(ctx context.Context, p *Pipeline) {
	if err := e.store.IncrementViews(ctx, p.videoID); err != nil {
		hlog.CtxErrorf(ctx, "increment views failed: video_id=%d err=%v", p.videoID, err)
	}
	if p.Viewer == 0 {
		return
	}
	if _, err := e.store.AddWatchHistory(ctx, p.Viewer, p.videoID); err != nil {
		hlog.CtxErrorf(ctx, "add watch history failed: user_id=%d video_id=%d err=%v", p.Viewer, p.videoID, err)
	}
}

// Stats 执行 channelStats
func (e *Executor) Stats(ctx context.Context, p *Pipeline) (*ChannelStats, error) {
	if p.shape != shapeAggregate {
		return nil, errno.InvalidArgumentErr.WithMessage(string(p.Kind) + " is not an aggregate feed")
	}
	owner, _ := p.stage(StageFilterByOwner)

	conn, cancel := e.store.WithContext(ctx)
	defer cancel()

	var row struct {
		TotalVideos int64
		TotalViews  int64
		TotalLikes  int64
	}
	err := conn.Model(&model.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views, COALESCE(SUM(likes_count), 0) AS total_likes").
		Where("owner_id = ?", owner.ID).
		Scan(&row).Error
	if err != nil {
		return nil, errors.WithMessage(err, "aggregate channel videos")
	}
	stats := &ChannelStats{TotalVideos: row.TotalVideos, TotalViews: row.TotalViews}
	if p.Has(StageJoinLikeCount) {
		stats.TotalLikes = row.TotalLikes
	}
	if p.Has(StageJoinSubscriberCount) {
		counts, err := e.subscriberCounts(ctx, []int64{owner.ID})
		if err != nil {
			return nil, err
		}
		stats.TotalSubscribers = counts[owner.ID]
	}
	return stats, nil
}

// List 把 Run 的结果转换成具体类型
func List[T any](ctx context.Context, e *Executor, p *Pipeline) (paginate.Result[T], error) {
	res, err := e.Run(ctx, p)
	if err != nil {
		return paginate.Result[T]{}, err
	}
	items := make([]T, 0, len(res.Items))
	for _, it := range res.Items {
		v, ok := it.(T)
		if !ok {
			return paginate.Result[T]{}, errno.ServiceErr.WithMessage("unexpected item type for " + string(p.Kind))
		}
		items = append(items, v)
	}
	return paginate.Result[T]{
		Items:      items,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalItems: res.TotalItems,
		TotalPages: res.TotalPages,
	}, nil
}

func Get[T any](ctx context.Context, e *Executor, p *Pipeline) (T, error) {
	var zero T
	out, err := e.One(ctx, p)
	if err != nil {
		return zero, err
	}
	v, ok := out.(T)
	if !ok {
		return zero, errno.ServiceErr.WithMessage("unexpected item type for " + string(p.Kind))
	}
	return v, nil
}

func (e *Executor) fetch(ctx context.Context, p *Pipeline) ([]*record, int64, error) {
	src := p.source
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()

	q := conn.Table(src.table)
	for _, j := range src.joins {
		q = q.Joins(j)
	}

	for _, s := range p.Stages {
		if !s.isMatch() {
			continue
		}
		switch s.Kind {
		case StageTextSearch:
			ids, err := e.searcher.SearchVideoIDs(ctx, s.Query, e.maxHits)
			if err != nil {
				return nil, 0, errors.WithMessage(errno.DependencyFailureErr, err.Error())
			}
			if len(ids) == 0 {
				return nil, 0, nil
			}
			q = q.Where(src.search+" IN ?", ids)
		case StageFilterPublished:
			if s.Viewer != 0 {
				q = q.Where("("+src.published+" = ? OR "+src.videoOwner+" = ?)", true, s.Viewer)
			} else {
				q = q.Where(src.published+" = ?", true)
			}
		case StageFilterByOwner:
			q = q.Where(src.owner+" = ?", s.ID)
		case StageFilterByRef:
			q = q.Where(src.refs[s.Field]+" = ?", s.ID)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.WithMessage(err, "count "+string(p.Kind))
	}
	if total == 0 || p.Page.Offset() >= total {
		return nil, total, nil
	}

	if sort, ok := p.stage(StageSort); ok {
		dir := strings.ToUpper(sort.Direction)
		q = q.Order(src.sorts[sort.Field] + " " + dir).Order(src.rowID + " " + dir)
	}

	ids := make([]int64, 0, p.Page.Limit)
	err := q.Offset(int(p.Page.Offset())).Limit(int(p.Page.Limit)).Pluck(src.entityID, &ids).Error
	if err != nil {
		return nil, 0, errors.WithMessage(err, "fetch "+string(p.Kind))
	}

	records, err := e.load(ctx, p, ids)
	if err != nil {
		return nil, 0, err
	}
	if err = e.enrich(ctx, p, records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func projection(p *Pipeline) []string {
	if s, ok := p.stage(StageProject); ok && len(s.Fields) > 0 {
		return s.Fields
	}
	return nil
}

// load 按 id 批量取实体并保持分页顺序
func (e *Executor) load(ctx context.Context, p *Pipeline, ids []int64) ([]*record, error) {
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()
	if cols := projection(p); cols != nil {
		conn = conn.Select(cols)
	}

	records := make([]*record, 0, len(ids))
	switch p.source.entity {
	case entityVideo:
		rows := make([]*model.Video, 0, len(ids))
		if err := conn.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		byID := make(map[int64]*model.Video, len(rows))
		for _, r := range rows {
			byID[r.ID] = r
		}
		for _, id := range ids {
			if v, ok := byID[id]; ok {
				records = append(records, &record{video: v})
			}
		}
	case entityComment:
		rows := make([]*model.Comment, 0, len(ids))
		if err := conn.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		byID := make(map[int64]*model.Comment, len(rows))
		for _, r := range rows {
			byID[r.ID] = r
		}
		for _, id := range ids {
			if c, ok := byID[id]; ok {
				records = append(records, &record{comment: c})
			}
		}
	case entityTweet:
		rows := make([]*model.Tweet, 0, len(ids))
		if err := conn.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		byID := make(map[int64]*model.Tweet, len(rows))
		for _, r := range rows {
			byID[r.ID] = r
		}
		for _, id := range ids {
			if t, ok := byID[id]; ok {
				records = append(records, &record{tweet: t})
			}
		}
	case entityUser:
		users, err := e.users(ctx, ids, projection(p))
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if u, ok := users[id]; ok {
				records = append(records, &record{user: u})
			}
		}
	case entityPlaylist:
		rows := make([]*model.Playlist, 0, len(ids))
		if err := conn.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		byID := make(map[int64]*model.Playlist, len(rows))
		for _, r := range rows {
			byID[r.ID] = r
		}
		for _, id := range ids {
			if pl, ok := byID[id]; ok {
				records = append(records, &record{playlist: pl})
			}
		}
	}
	return records, nil
}
