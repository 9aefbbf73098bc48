package mediaService

import (
	"MeridianBackend/internal/api/media"
	contextPkg "MeridianBackend/pkg/context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadCoverImage stores the cover at a slug-derived key. Re-uploading a
// cover for the same slug overwrites the previous object.
func (s *mediaService) UploadCoverImage(ctx context.Context, userID string, file *multipart.FileHeader, slug string) (media.UploadResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.validateUpload(ctx, userID, file, slug); err != nil {
		return media.UploadResult{}, err
	}

	key := fmt.Sprintf("covers/%s-cover%s", slug, fileExtension(file))

	return s.upload(ctx, requestID, file, key)
}

// UploadContentImage stores an inline image at a timestamped key, so
// repeated uploads for the same slug never collide.
func (s *mediaService) UploadContentImage(ctx context.Context, userID string, file *multipart.FileHeader, slug string) (media.UploadResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.validateUpload(ctx, userID, file, slug); err != nil {
		return media.UploadResult{}, err
	}

	key := fmt.Sprintf("content/%s-%d%s", slug, s.now().UnixMilli(), fileExtension(file))

	return s.upload(ctx, requestID, file, key)
}

func (s *mediaService) DeleteImage(ctx context.Context, path string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.s3Client.DeleteFile(path); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       path,
			"error":      err.Error(),
		}).Error("Failed to delete image")
		return media.ErrDeleteImage
	}

	return nil
}

func (s *mediaService) GetPublicURL(path string) string {
	return s.s3Client.PublicURL(path)
}

// GetOptimizedImageURL appends resize hints as query parameters. Whether
// they are honored depends on the transform layer in front of the bucket.
func (s *mediaService) GetOptimizedImageURL(path string, opts media.ImageOptions) string {
	base := s.s3Client.PublicURL(path)

	params := url.Values{}
	if opts.Width > 0 {
		params.Set("width", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		params.Set("height", strconv.Itoa(opts.Height))
	}
	if opts.Quality > 0 {
		params.Set("quality", strconv.Itoa(opts.Quality))
	}

	if len(params) == 0 {
		return base
	}

	return base + "?" + params.Encode()
}

// validateUpload runs every precondition before any storage call is made.
func (s *mediaService) validateUpload(ctx context.Context, userID string, file *multipart.FileHeader, slug string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if userID == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Upload attempted without authentication")
		return media.ErrUploadUnauthorized
	}

	if slug == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Upload attempted without a post slug")
		return media.ErrMissingSlug
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"content_type": contentType,
		}).Warn("Invalid upload file type")
		return media.ErrInvalidFileType
	}

	if file.Size > s.maxFileSize {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"size":       file.Size,
		}).Warn("Upload file too large")
		return media.ErrFileTooLarge
	}

	return nil
}

func (s *mediaService) upload(ctx context.Context, requestID string, file *multipart.FileHeader, key string) (media.UploadResult, error) {
	uploadedURL, err := s.s3Client.UploadFile(file, key)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Error("Failed to upload image")
		return media.UploadResult{}, media.ErrFailedToUpload
	}

	return media.UploadResult{
		URL:  uploadedURL,
		Path: key,
	}, nil
}

func fileExtension(file *multipart.FileHeader) string {
	return strings.ToLower(filepath.Ext(file.Filename))
}
