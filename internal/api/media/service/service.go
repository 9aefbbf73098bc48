package mediaService

import (
	"MeridianBackend/internal/api/media"
	"MeridianBackend/pkg/s3"
	"context"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
)

type IMediaService interface {
	UploadCoverImage(ctx context.Context, userID string, file *multipart.FileHeader, slug string) (media.UploadResult, error)
	UploadContentImage(ctx context.Context, userID string, file *multipart.FileHeader, slug string) (media.UploadResult, error)
	DeleteImage(ctx context.Context, path string) error
	GetPublicURL(path string) string
	GetOptimizedImageURL(path string, opts media.ImageOptions) string
}

type mediaService struct {
	log         *logrus.Logger
	s3Client    s3.ItfS3
	maxFileSize int64
	now         func() time.Time
}

func NewMediaService(
	log *logrus.Logger,
	s3Client s3.ItfS3,
) IMediaService {
	return &mediaService{
		log:         log,
		s3Client:    s3Client,
		maxFileSize: 5 * 1024 * 1024,
		now:         time.Now,
	}
}
