package postService

import (
	posts "MeridianBackend/internal/api/post"
	"MeridianBackend/internal/entity"
	contextPkg "MeridianBackend/pkg/context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *postsService) GetAllPosts(ctx context.Context, page, limit int) (*posts.PostListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	page, limit = normalizePagination(page, limit)
	offset := (page - 1) * limit

	postsList, total, err := repo.Posts.GetAllPosts(ctx, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"page":       page,
			"limit":      limit,
			"error":      err.Error(),
		}).Error("Failed to get posts")
		return nil, err
	}

	return makePostListResponse(postsList, total), nil
}

func (s *postsService) GetPublishedPosts(ctx context.Context, page, limit int) (*posts.PostListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	page, limit = normalizePagination(page, limit)
	offset := (page - 1) * limit

	postsList, total, err := repo.Posts.GetPublishedPosts(ctx, limit, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"page":       page,
			"limit":      limit,
			"error":      err.Error(),
		}).Error("Failed to get published posts")
		return nil, err
	}

	return makePostListResponse(postsList, total), nil
}

func (s *postsService) GetFeaturedPosts(ctx context.Context) ([]posts.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	postsList, err := repo.Posts.GetFeaturedPosts(ctx, featuredPostsLimit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get featured posts")
		return nil, err
	}

	response := make([]posts.PostResponse, 0, len(postsList))
	for _, post := range postsList {
		response = append(response, makePostResponse(post))
	}

	return response, nil
}

// GetPostBySlug is the public read path. A successful lookup bumps the
// view counter; the returned post keeps the count it was read with and a
// failed bump never fails the request.
func (s *postsService) GetPostBySlug(ctx context.Context, slug string) (posts.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return posts.PostResponse{}, err
	}

	post, err := repo.Posts.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       slug,
			}).Warn("Post not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       slug,
				"error":      err.Error(),
			}).Error("Failed to get post by slug")
		}
		return posts.PostResponse{}, err
	}

	if err := repo.Posts.IncrementViews(ctx, slug); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       slug,
			"error":      err.Error(),
		}).Warn("Failed to increment view count")
	}

	return makePostResponse(post), nil
}

func (s *postsService) GetPostByID(ctx context.Context, id string) (posts.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postsRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return posts.PostResponse{}, err
	}

	post, err := repo.Posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Post not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get post")
		}
		return posts.PostResponse{}, err
	}

	return makePostResponse(post), nil
}

func (s *postsService) CreatePost(ctx context.Context, req posts.CreatePostRequest) (posts.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	status := entity.PostStatus(req.Status)
	if !status.IsValid() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     req.Status,
		}).Warn("Invalid post status")
		return posts.PostResponse{}, posts.ErrInvalidPostStatus
	}

	repo, err := s.postsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return posts.PostResponse{}, err
	}
	defer repo.Rollback()

	postID, err := s.utils.NewULIDFromTimestamp(s.now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return posts.PostResponse{}, err
	}

	now := s.now()

	var publishedAt *time.Time
	if status == entity.PostStatusPublished {
		t := now
		publishedAt = &t
	}

	post := entity.Post{
		ID:          postID,
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Author:      req.Author,
		Status:      status,
		Tags:        req.Tags,
		CoverImage:  req.CoverImage,
		Featured:    req.Featured,
		Views:       0,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Posts.CreatePost(ctx, post); err != nil {
		if errors.Is(err, posts.ErrSlugAlreadyExists) {
			return posts.PostResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create post")
		return posts.PostResponse{}, posts.ErrCreatePost
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return posts.PostResponse{}, posts.ErrCreatePost
	}

	return makePostResponse(post), nil
}

// UpdatePost applies a partial update: empty request fields keep the
// stored value. Setting status to published re-stamps published_at even
// when the post was already published; there is no first-publish-wins
// distinction. Concurrent editors are last-writer-wins.
func (s *postsService) UpdatePost(ctx context.Context, id string, req posts.UpdatePostRequest) (posts.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return posts.PostResponse{}, err
	}
	defer repo.Rollback()

	post, err := repo.Posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Post not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get post")
		}
		return posts.PostResponse{}, err
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	if req.Excerpt != "" {
		post.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Author != "" {
		post.Author = req.Author
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.CoverImage != "" {
		post.CoverImage = req.CoverImage
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}

	now := s.now()

	if req.Status != "" {
		status := entity.PostStatus(req.Status)
		if !status.IsValid() {
			return posts.PostResponse{}, posts.ErrInvalidPostStatus
		}
		post.Status = status
		if status == entity.PostStatusPublished {
			t := now
			post.PublishedAt = &t
		}
	}

	post.UpdatedAt = now

	if err := repo.Posts.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, posts.ErrPostNotFound) || errors.Is(err, posts.ErrSlugAlreadyExists) {
			return posts.PostResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update post")
		return posts.PostResponse{}, posts.ErrUpdatePost
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return posts.PostResponse{}, posts.ErrUpdatePost
	}

	return makePostResponse(post), nil
}

func (s *postsService) DeletePost(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postsRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if err := repo.Posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Post not found")
			return err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete post")
		return posts.ErrDeletePost
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit transaction")
		return posts.ErrDeletePost
	}

	return nil
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func makePostListResponse(postsList []entity.Post, total int) *posts.PostListResponse {
	response := &posts.PostListResponse{
		Posts: make([]posts.PostResponse, 0, len(postsList)),
		Total: total,
	}

	for _, post := range postsList {
		response.Posts = append(response.Posts, makePostResponse(post))
	}

	return response
}
