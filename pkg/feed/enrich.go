package feed

import (
	"context"

	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
)

// enrich 每个关联阶段只发一条 IN 查询
func (e *Executor) enrich(ctx context.Context, p *Pipeline, records []*record) error {
	if len(records) == 0 {
		return nil
	}
	for _, s := range p.Stages {
		var err error
		switch s.Kind {
		case StageJoinOwnerProfile:
			err = e.joinOwners(ctx, records)
		case StageJoinSubscriberCount:
			err = e.joinSubscriberCounts(ctx, records)
		case StageJoinIsSubscribedByViewer:
			err = e.joinIsSubscribed(ctx, s.Viewer, records)
		case StageJoinIsLikedByViewer:
			err = e.joinIsLiked(ctx, s.Viewer, records)
		case StageLimitLatestPerGroup:
			err = e.joinLatestVideos(ctx, s.N, records)
		case StageJoinVideoTotals:
			err = e.joinVideoTotals(ctx, records)
		case StageJoinLikeCount, StageJoinCommentCount:
			// 直接使用实体上的冗余计数
		}
		if err != nil {
			return errors.WithMessagef(err, "%s for %s", s.Kind, p.Kind)
		}
	}
	return nil
}

func ownerOf(r *record) int64 {
	switch {
	case r.video != nil:
		return r.video.OwnerID
	case r.comment != nil:
		return r.comment.OwnerID
	case r.tweet != nil:
		return r.tweet.OwnerID
	case r.playlist != nil:
		return r.playlist.OwnerID
	}
	return 0
}

// channelOf 订阅相关的关联作用于哪个用户：用户行是自己，其余是作者
func channelOf(r *record) int64 {
	if r.user != nil {
		return r.user.ID
	}
	return ownerOf(r)
}

func uniq(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (e *Executor) users(ctx context.Context, ids []int64, cols []string) (map[int64]*model.User, error) {
	out := make(map[int64]*model.User, len(ids))
	ids = uniq(ids)
	if len(ids) == 0 {
		return out, nil
	}
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()
	if cols == nil {
		cols = profileFields
	}
	rows := make([]*model.User, 0, len(ids))
	if err := conn.Select(cols).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		out[u.ID] = u
	}
	return out, nil
}

func (e *Executor) joinOwners(ctx context.Context, records []*record) error {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, ownerOf(r))
	}
	owners, err := e.users(ctx, ids, profileFields)
	if err != nil {
		return err
	}
	for _, r := range records {
		r.owner = owners[ownerOf(r)]
	}
	return nil
}

type countRow struct {
	K int64
	N int64
}

func (e *Executor) subscriberCounts(ctx context.Context, channels []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(channels))
	channels = uniq(channels)
	if len(channels) == 0 {
		return out, nil
	}
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()
	rows := make([]countRow, 0, len(channels))
	err := conn.Model(&model.Subscription{}).
		Select("channel_id AS k, COUNT(*) AS n").
		Where("channel_id IN ?", channels).
		Group("channel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.K] = row.N
	}
	return out, nil
}

func (e *Executor) joinSubscriberCounts(ctx context.Context, records []*record) error {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, channelOf(r))
	}
	counts, err := e.subscriberCounts(ctx, ids)
	if err != nil {
		return err
	}
	for _, r := range records {
		r.subscribers = counts[channelOf(r)]
	}
	return nil
}

// joinIsSubscribed 匿名访问直接为 false，不查库
func (e *Executor) joinIsSubscribed(ctx context.Context, viewer int64, records []*record) error {
	if viewer == 0 {
		return nil
	}
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, channelOf(r))
	}
	ids = uniq(ids)
	if len(ids) == 0 {
		return nil
	}
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()
	hits := make([]int64, 0, len(ids))
	err := conn.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id IN ?", viewer, ids).
		Pluck("channel_id", &hits).Error
	if err != nil {
		return err
	}
	subscribed := make(map[int64]bool, len(hits))
	for _, id := range hits {
		subscribed[id] = true
	}
	for _, r := range records {
		r.subscribed = subscribed[channelOf(r)]
	}
	return nil
}

func likeTarget(r *record) (string, int64) {
	switch {
	case r.video != nil:
		return "video_id", r.video.ID
	case r.comment != nil:
		return "comment_id", r.comment.ID
	case r.tweet != nil:
		return "tweet_id", r.tweet.ID
	}
	return "", 0
}

func (e *Executor) joinIsLiked(ctx context.Context, viewer int64, records []*record) error {
	if viewer == 0 {
		return nil
	}
	col, _ := likeTarget(records[0])
	if col == "" {
		return nil
	}
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		_, id := likeTarget(r)
		ids = append(ids, id)
	}
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()
	hits := make([]int64, 0, len(ids))
	err := conn.Model(&model.Like{}).
		Where("liked_by = ? AND "+col+" IN ?", viewer, uniq(ids)).
		Pluck(col, &hits).Error
	if err != nil {
		return err
	}
	liked := make(map[int64]bool, len(hits))
	for _, id := range hits {
		liked[id] = true
	}
	for _, r := range records {
		_, id := likeTarget(r)
		r.liked = liked[id]
	}
	return nil
}

// joinLatestVideos 每个频道取最新的 n 个已发布视频，用窗口函数一次查完
func (e *Executor) joinLatestVideos(ctx context.Context, n int, records []*record) error {
	channels := make([]int64, 0, len(records))
	for _, r := range records {
		channels = append(channels, channelOf(r))
	}
	channels = uniq(channels)
	if len(channels) == 0 {
		return nil
	}
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()

	ids := make([]int64, 0, len(channels)*n)
	err := conn.Raw(`SELECT id FROM (
		SELECT v.id, ROW_NUMBER() OVER (PARTITION BY v.owner_id ORDER BY v.created_at DESC, v.id DESC) AS rn
		FROM videos v WHERE v.owner_id IN ? AND v.is_published = ?
	) ranked WHERE rn <= ?`, channels, true, n).Scan(&ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	videos := make([]*model.Video, 0, len(ids))
	if err = conn.Select(videoCardFields).Where("id IN ?", ids).
		Order("created_at DESC").Order("id DESC").Find(&videos).Error; err != nil {
		return err
	}
	byOwner := make(map[int64][]*model.Video, len(channels))
	for _, v := range videos {
		byOwner[v.OwnerID] = append(byOwner[v.OwnerID], v)
	}
	for _, r := range records {
		r.latest = byOwner[channelOf(r)]
	}
	return nil
}

// joinVideoTotals 播放列表中仍然存在的视频数量和播放量合计
func (e *Executor) joinVideoTotals(ctx context.Context, records []*record) error {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		if r.playlist != nil {
			ids = append(ids, r.playlist.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	conn, cancel := e.store.WithContext(ctx)
	defer cancel()

	var rows []struct {
		K     int64
		N     int64
		Views int64
	}
	err := conn.Table("playlist_videos pv").
		Joins("JOIN videos v ON v.id = pv.video_id").
		Select("pv.playlist_id AS k, COUNT(v.id) AS n, COALESCE(SUM(v.views), 0) AS views").
		Where("pv.playlist_id IN ?", ids).
		Group("pv.playlist_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		for _, r := range records {
			if r.playlist != nil && r.playlist.ID == row.K {
				r.totalVideos, r.totalViews = row.N, row.Views
			}
		}
	}
	return nil
}
