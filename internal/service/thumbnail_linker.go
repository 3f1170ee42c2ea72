package service

import (
	"context"
	"strings"

	"resaletrack/internal/config"
	"resaletrack/internal/domain"
	"resaletrack/internal/port"
)

type pathLinker struct {
	baseURL string
}

// NewPathLinker links images to <baseURL>/<filename>, the path the upload
// directory is served under.
func NewPathLinker(baseURL string) port.ThumbnailLinker {
	return &pathLinker{baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *pathLinker) Link(_ context.Context, img *domain.ItemImage) (string, error) {
	return l.baseURL + "/" + strings.TrimLeft(img.Filename, "/"), nil
}

type presignLinker struct {
	storage   port.ObjectStorage
	bucket    string
	keyPrefix string
	expiry    int64
}

// NewPresignLinker links images to presigned GET URLs for <keyPrefix><filename>.
func NewPresignLinker(storage port.ObjectStorage, bucket, keyPrefix string, expirySeconds int64) port.ThumbnailLinker {
	return &presignLinker{storage: storage, bucket: bucket, keyPrefix: keyPrefix, expiry: expirySeconds}
}

func (l *presignLinker) Link(ctx context.Context, img *domain.ItemImage) (string, error) {
	return l.storage.GetPresignedURL(ctx, l.bucket, l.keyPrefix+img.Filename, l.expiry)
}

// NewThumbnailLinker picks presigned links when they are enabled and a bucket
// is configured, and plain upload paths otherwise.
func NewThumbnailLinker(reportCfg *config.ReportConfig, s3Cfg *config.S3Config, storage port.ObjectStorage) port.ThumbnailLinker {
	if reportCfg.PresignThumbnails && storage != nil && s3Cfg.Bucket != "" {
		return NewPresignLinker(storage, s3Cfg.Bucket, s3Cfg.KeyPrefix, s3Cfg.PresignExpiry)
	}
	return NewPathLinker(reportCfg.ImageBaseURL)
}
