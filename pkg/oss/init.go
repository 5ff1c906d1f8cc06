package oss

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"MediaHub.com/config"
)

// NewMinioStore 连接 MinIO 并保证 bucket 存在
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	c := cfg.Minio
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", c.Endpoint, c.AccessKeyID)

	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKeyID, c.SecretAccessKey, ""),
		Secure: c.UseSSL,
		Region: c.Region,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, errors.WithMessage(err, "create minio client failed")
	}

	// 检查存储桶是否存在，不存在则创建
	exists, err := client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return nil, errors.WithMessage(err, "check bucket error")
	}
	if !exists {
		if err = client.MakeBucket(ctx, c.Bucket, minio.MakeBucketOptions{Region: c.Region}); err != nil {
			return nil, errors.WithMessage(err, "create bucket error")
		}
	}

	hlog.Info("Connect Minio Success")
	return &MinioStore{
		client:  client,
		bucket:  c.Bucket,
		baseURL: publicBaseURL(c.PublicBaseURL, c.Endpoint, c.UseSSL),
	}, nil
}
