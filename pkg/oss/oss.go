// Package oss 封装对象存储，对业务只暴露上传和删除两个动作
package oss

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Blob 上传成功后的访问地址和对象 ID，删除时使用 ID
type Blob struct {
	URL string
	ID  string
}

// BlobStore 失败不返回 error：Put 返回 nil，Delete 返回 false，由调用方决定如何处理
type BlobStore interface {
	Put(ctx context.Context, localPath string) *Blob
	Delete(ctx context.Context, id string) bool
}

type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

var _ BlobStore = (*MinioStore)(nil)

// Put 上传本地文件，无论成功与否都会删除本地临时文件
func (s *MinioStore) Put(ctx context.Context, localPath string) *Blob {
	if localPath == "" {
		return nil
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s failed: %v", localPath, err)
		}
	}()

	objectName := ObjectName(localPath)
	_, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: ContentType(localPath),
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "upload %s to minio failed: %v", localPath, err)
		return nil
	}
	return &Blob{URL: s.baseURL + "/" + s.bucket + "/" + objectName, ID: objectName}
}

func (s *MinioStore) Delete(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		hlog.CtxErrorf(ctx, "delete object %s failed: %v", id, err)
		return false
	}
	return true
}

// ObjectName 按文件类型分目录，文件名使用 uuid 避免覆盖
func ObjectName(localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	dir := "file"
	switch {
	case strings.HasPrefix(ContentType(localPath), "video/"):
		dir = "video"
	case strings.HasPrefix(ContentType(localPath), "image/"):
		dir = "picture"
	}
	return dir + "/" + uuid.NewString() + ext
}

func ContentType(localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	switch ext {
	case ".mp4":
		return "video/mp4"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func publicBaseURL(configured, endpoint string, useSSL bool) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// Unavailable 未配置对象存储时使用，所有操作都失败
type Unavailable struct{}

func (Unavailable) Put(ctx context.Context, localPath string) *Blob {
	hlog.CtxErrorf(ctx, "blob store is not configured, dropping %s", localPath)
	_ = os.Remove(localPath)
	return nil
}

func (Unavailable) Delete(context.Context, string) bool { return false }
