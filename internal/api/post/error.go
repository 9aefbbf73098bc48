package posts

import "MeridianBackend/pkg/response"

var (
	ErrPostNotFound      = response.NewError(404, "post not found")
	ErrSlugAlreadyExists = response.NewError(409, "post slug already in use")
	ErrInvalidPostStatus = response.NewError(400, "invalid post status")
	ErrInvalidPostData   = response.NewError(400, "invalid post data")
	ErrCreatePost        = response.NewError(500, "failed to create post")
	ErrUpdatePost        = response.NewError(500, "failed to update post")
	ErrDeletePost        = response.NewError(500, "failed to delete post")
)
