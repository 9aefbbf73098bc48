package media

import "MeridianBackend/pkg/response"

var (
	ErrMissingSlug        = response.NewError(400, "post slug is required before uploading an image, create the post title first")
	ErrInvalidFileType    = response.NewError(400, "invalid file type")
	ErrFileTooLarge       = response.NewError(413, "file too large")
	ErrUploadUnauthorized = response.NewError(401, "authentication required to upload files")
	ErrFailedToUpload     = response.NewError(500, "failed to upload file")
	ErrDeleteImage        = response.NewError(500, "failed to delete image")
)
