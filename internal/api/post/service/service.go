package postService

import (
	posts "MeridianBackend/internal/api/post"
	postRepository "MeridianBackend/internal/api/post/repository"
	"MeridianBackend/pkg/utils"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const featuredPostsLimit = 3

type IPostsService interface {
	GetAllPosts(ctx context.Context, page, limit int) (*posts.PostListResponse, error)
	GetPublishedPosts(ctx context.Context, page, limit int) (*posts.PostListResponse, error)
	GetFeaturedPosts(ctx context.Context) ([]posts.PostResponse, error)
	GetPostBySlug(ctx context.Context, slug string) (posts.PostResponse, error)
	GetPostByID(ctx context.Context, id string) (posts.PostResponse, error)
	CreatePost(ctx context.Context, req posts.CreatePostRequest) (posts.PostResponse, error)
	UpdatePost(ctx context.Context, id string, req posts.UpdatePostRequest) (posts.PostResponse, error)
	DeletePost(ctx context.Context, id string) error
}

type postsService struct {
	log       *logrus.Logger
	postsRepo postRepository.Repository
	utils     utils.IUtils
	now       func() time.Time
}

func NewPostsService(
	log *logrus.Logger,
	postsRepo postRepository.Repository,
	utils utils.IUtils,
) IPostsService {
	return &postsService{
		log:       log,
		postsRepo: postsRepo,
		utils:     utils,
		now:       time.Now,
	}
}
