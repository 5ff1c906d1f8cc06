package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"MediaHub.com/cmd/model"
	"MediaHub.com/pkg/app"
	"MediaHub.com/pkg/errno"
	"MediaHub.com/pkg/feed"
	"MediaHub.com/pkg/oss"
	"MediaHub.com/pkg/paginate"
	"MediaHub.com/pkg/utils"
)

// 测试中替换为不依赖 ffmpeg 的实现
var (
	probeDuration    = utils.ProbeDuration
	extractThumbnail = utils.GetVideoThumbnail
)

type PublishVideoRequest struct {
	UserID      int64
	Title       string
	Description string
	// 本地临时文件，上传后会被删除
	VideoPath     string
	ThumbnailPath string
	IsPublished   bool
}

type UpdateVideoRequest struct {
	UserID        int64
	VideoID       int64
	Title         string
	Description   string
	ThumbnailPath string
}

type GetVideoRequest struct {
	Viewer  int64
	VideoID int64
}

type ListVideosRequest struct {
	Viewer   int64
	Query    string
	OwnerID  int64
	SortBy   string
	SortType string
	Page     int64
	Limit    int64
}

type TogglePublishResponse struct {
	VideoID     int64 `json:"videoId,string"`
	IsPublished bool  `json:"isPublished"`
}

type VideoService struct {
	ctx  context.Context
	deps *app.Deps
}

func NewVideoService(ctx context.Context, deps *app.Deps) *VideoService {
	return &VideoService{ctx: ctx, deps: deps}
}

func removeTemp(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}

// PublishVideo 上传视频和封面后写入视频记录。没有封面时截取第一帧
func (service *VideoService) PublishVideo(req *PublishVideoRequest) (*model.Video, error) {
	ctx := service.ctx
	title := strings.TrimSpace(req.Title)
	if title == "" {
		removeTemp(req.VideoPath, req.ThumbnailPath)
		return nil, errno.InvalidArgumentErr.WithMessage("Title is required")
	}
	if req.VideoPath == "" {
		removeTemp(req.ThumbnailPath)
		return nil, errno.InvalidArgumentErr.WithMessage("Video file is required")
	}

	// 上传会删除本地文件，所以先读时长和截图
	duration, err := probeDuration(req.VideoPath)
	if err != nil {
		hlog.CtxWarnf(ctx, "probe duration failed, using 0: path=%s err=%v", req.VideoPath, err)
	}
	thumbPath := req.ThumbnailPath
	if thumbPath == "" {
		dir := filepath.Join(filepath.Dir(req.VideoPath), uuid.NewString())
		thumbPath, err = extractThumbnail(req.VideoPath, dir)
		if err != nil {
			removeTemp(req.VideoPath)
			return nil, errors.WithMessage(errno.DependencyFailureErr.WithMessage("Failed to generate thumbnail"), err.Error())
		}
		defer os.RemoveAll(dir)
	}

	videoBlob := service.deps.Blobs.Put(ctx, req.VideoPath)
	if videoBlob == nil {
		removeTemp(thumbPath)
		return nil, errno.DependencyFailureErr.WithMessage("Failed to upload video file")
	}
	thumbBlob := service.deps.Blobs.Put(ctx, thumbPath)
	if thumbBlob == nil {
		service.dropBlob(videoBlob)
		return nil, errno.DependencyFailureErr.WithMessage("Failed to upload thumbnail")
	}

	video := &model.Video{
		OwnerID:         req.UserID,
		Title:           title,
		Description:     strings.TrimSpace(req.Description),
		VideoUrl:        videoBlob.URL,
		VideoBlobID:     videoBlob.ID,
		ThumbnailUrl:    thumbBlob.URL,
		ThumbnailBlobID: thumbBlob.ID,
		Duration:        duration,
		IsPublished:     req.IsPublished,
	}
	if err := service.deps.Store.CreateVideo(ctx, video); err != nil {
		service.dropBlob(videoBlob)
		service.dropBlob(thumbBlob)
		return nil, errors.WithMessage(err, "dao.CreateVideo failed")
	}
	return video, nil
}

func (service *VideoService) dropBlob(b *oss.Blob) {
	if !service.deps.Blobs.Delete(service.ctx, b.ID) {
		hlog.CtxErrorf(service.ctx, "delete orphan blob failed: blob=%s", b.ID)
	}
}

// ownedVideo 读取视频并校验作者
func (service *VideoService) ownedVideo(videoId, userId int64) (*model.Video, error) {
	video, err := service.deps.Store.GetVideo(service.ctx, videoId)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userId {
		return nil, errno.ForbiddenErr.WithMessage("You are not allowed to modify this video")
	}
	return video, nil
}

// UpdateVideo 空字段保持不变。新封面上传成功并写入记录后才删除旧封面
func (service *VideoService) UpdateVideo(req *UpdateVideoRequest) (*model.Video, error) {
	ctx := service.ctx
	video, err := service.ownedVideo(req.VideoID, req.UserID)
	if err != nil {
		removeTemp(req.ThumbnailPath)
		return nil, err
	}

	updates := map[string]interface{}{}
	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		updates["description"] = desc
	}
	if len(updates) == 0 && req.ThumbnailPath == "" {
		return nil, errno.InvalidArgumentErr.WithMessage("Nothing to update")
	}

	var thumb *oss.Blob
	if req.ThumbnailPath != "" {
		if thumb = service.deps.Blobs.Put(ctx, req.ThumbnailPath); thumb == nil {
			return nil, errno.DependencyFailureErr.WithMessage("Failed to upload thumbnail")
		}
		updates["thumbnail_url"] = thumb.URL
		updates["thumbnail_blob_id"] = thumb.ID
	}

	if err := service.deps.Store.UpdateVideo(ctx, req.VideoID, updates); err != nil {
		if thumb != nil {
			service.dropBlob(thumb)
		}
		return nil, errors.WithMessage(err, "dao.UpdateVideo failed")
	}
	if thumb != nil && video.ThumbnailBlobID != "" {
		if !service.deps.Blobs.Delete(ctx, video.ThumbnailBlobID) {
			hlog.CtxErrorf(ctx, "delete replaced thumbnail failed: video_id=%d blob=%s", video.ID, video.ThumbnailBlobID)
		}
	}
	return service.deps.Store.GetVideo(ctx, req.VideoID)
}

func (service *VideoService) TogglePublish(userId, videoId int64) (*TogglePublishResponse, error) {
	video, err := service.ownedVideo(videoId, userId)
	if err != nil {
		return nil, err
	}
	published := !video.IsPublished
	if err := service.deps.Store.UpdateVideo(service.ctx, videoId, map[string]interface{}{"is_published": published}); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateVideo failed")
	}
	return &TogglePublishResponse{VideoID: videoId, IsPublished: published}, nil
}

// DeleteVideo 级联删除视频、评论、点赞和对象存储中的文件
func (service *VideoService) DeleteVideo(userId, videoId int64) error {
	if _, err := service.ownedVideo(videoId, userId); err != nil {
		return err
	}
	return service.deps.Cascade.DeleteVideo(service.ctx, videoId)
}

// GetVideo 视频详情，成功读取后播放量加一并记录观看历史
func (service *VideoService) GetVideo(req *GetVideoRequest) (*feed.VideoDetail, error) {
	p, err := feed.Build(feed.VideoDetailKind, feed.Params{Viewer: req.Viewer, VideoID: req.VideoID})
	if err != nil {
		return nil, err
	}
	return feed.Get[*feed.VideoDetail](service.ctx, service.deps.Feed, p)
}

// ListVideos 首页视频列表，只包含已发布的视频
func (service *VideoService) ListVideos(req *ListVideosRequest) (paginate.Result[*feed.VideoItem], error) {
	var empty paginate.Result[*feed.VideoItem]
	page, err := service.deps.Page(req.Page, req.Limit)
	if err != nil {
		return empty, err
	}
	p, err := feed.Build(feed.GlobalVideos, feed.Params{
		Viewer:   req.Viewer,
		Query:    req.Query,
		OwnerID:  req.OwnerID,
		SortBy:   req.SortBy,
		SortType: req.SortType,
		Page:     page,
	})
	if err != nil {
		return empty, err
	}
	return feed.List[*feed.VideoItem](service.ctx, service.deps.Feed, p)
}
