package postService

import (
	posts "MeridianBackend/internal/api/post"
	postRepository "MeridianBackend/internal/api/post/repository"
	"MeridianBackend/internal/entity"
	"MeridianBackend/pkg/utils"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostsStore struct {
	createFn    func(ctx context.Context, post entity.Post) error
	getByIDFn   func(ctx context.Context, id string) (entity.Post, error)
	getBySlugFn func(ctx context.Context, slug string) (entity.Post, error)
	allFn       func(ctx context.Context, limit, offset int) ([]entity.Post, int, error)
	publishedFn func(ctx context.Context, limit, offset int) ([]entity.Post, int, error)
	featuredFn  func(ctx context.Context, limit int) ([]entity.Post, error)
	incrementFn func(ctx context.Context, slug string) error
	updateFn    func(ctx context.Context, post entity.Post) error
	deleteFn    func(ctx context.Context, id string) error
}

func (f *fakePostsStore) CreatePost(ctx context.Context, post entity.Post) error {
	return f.createFn(ctx, post)
}

func (f *fakePostsStore) GetPostByID(ctx context.Context, id string) (entity.Post, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePostsStore) GetPostBySlug(ctx context.Context, slug string) (entity.Post, error) {
	return f.getBySlugFn(ctx, slug)
}

func (f *fakePostsStore) GetAllPosts(ctx context.Context, limit, offset int) ([]entity.Post, int, error) {
	return f.allFn(ctx, limit, offset)
}

func (f *fakePostsStore) GetPublishedPosts(ctx context.Context, limit, offset int) ([]entity.Post, int, error) {
	return f.publishedFn(ctx, limit, offset)
}

func (f *fakePostsStore) GetFeaturedPosts(ctx context.Context, limit int) ([]entity.Post, error) {
	return f.featuredFn(ctx, limit)
}

func (f *fakePostsStore) IncrementViews(ctx context.Context, slug string) error {
	return f.incrementFn(ctx, slug)
}

func (f *fakePostsStore) UpdatePost(ctx context.Context, post entity.Post) error {
	return f.updateFn(ctx, post)
}

func (f *fakePostsStore) DeletePost(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeRepository struct {
	store     *fakePostsStore
	commits   int
	rollbacks int
	clientErr error
}

func (f *fakeRepository) NewClient(tx bool) (postRepository.Client, error) {
	if f.clientErr != nil {
		return postRepository.Client{}, f.clientErr
	}
	return postRepository.Client{
		Posts: f.store,
		Commit: func() error {
			f.commits++
			return nil
		},
		Rollback: func() error {
			f.rollbacks++
			return nil
		},
	}, nil
}

func newTestService(t *testing.T, repo *fakeRepository, at time.Time) *postsService {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, ok := NewPostsService(logger, repo, utils.New()).(*postsService)
	require.True(t, ok)
	svc.now = func() time.Time { return at }

	return svc
}

func TestCreatePost(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	t.Run("published post gets published_at stamped", func(t *testing.T) {
		var created entity.Post
		repo := &fakeRepository{store: &fakePostsStore{
			createFn: func(ctx context.Context, post entity.Post) error {
				created = post
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		resp, err := svc.CreatePost(context.Background(), posts.CreatePostRequest{
			Title:   "Go in Production",
			Slug:    "go-in-production",
			Content: "some content",
			Author:  "Ayu",
			Status:  "published",
			Tags:    []string{"Go"},
		})

		require.NoError(t, err)
		require.NotNil(t, created.PublishedAt)
		assert.Equal(t, now, *created.PublishedAt)
		assert.Equal(t, now, created.CreatedAt)
		assert.Equal(t, int64(0), created.Views)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, now, resp.PublishedDate)
		assert.Equal(t, 1, repo.commits)
	})

	t.Run("draft post has no published_at", func(t *testing.T) {
		var created entity.Post
		repo := &fakeRepository{store: &fakePostsStore{
			createFn: func(ctx context.Context, post entity.Post) error {
				created = post
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		resp, err := svc.CreatePost(context.Background(), posts.CreatePostRequest{
			Title:   "Draft",
			Slug:    "draft",
			Content: "wip",
			Author:  "Ayu",
			Status:  "draft",
		})

		require.NoError(t, err)
		assert.Nil(t, created.PublishedAt)
		// published_date falls back to created_at for unpublished posts.
		assert.Equal(t, now, resp.PublishedDate)
	})

	t.Run("invalid status is rejected before touching the repository", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{}}
		svc := newTestService(t, repo, now)

		_, err := svc.CreatePost(context.Background(), posts.CreatePostRequest{
			Title:   "Bad",
			Slug:    "bad",
			Content: "x",
			Author:  "Ayu",
			Status:  "scheduled",
		})

		assert.ErrorIs(t, err, posts.ErrInvalidPostStatus)
		assert.Equal(t, 0, repo.commits)
	})

	t.Run("duplicate slug surfaces the conflict", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{
			createFn: func(ctx context.Context, post entity.Post) error {
				return posts.ErrSlugAlreadyExists
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.CreatePost(context.Background(), posts.CreatePostRequest{
			Title:   "Dup",
			Slug:    "dup",
			Content: "x",
			Author:  "Ayu",
			Status:  "draft",
		})

		assert.ErrorIs(t, err, posts.ErrSlugAlreadyExists)
		assert.Equal(t, 0, repo.commits)
	})
}

func TestUpdatePost(t *testing.T) {
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	firstPublish := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	stored := entity.Post{
		ID:          "01STORED",
		Title:       "Old Title",
		Slug:        "old-slug",
		Content:     "old content",
		Author:      "Ayu",
		Status:      entity.PostStatusPublished,
		Tags:        []string{"Go"},
		PublishedAt: &firstPublish,
		CreatedAt:   firstPublish,
		UpdatedAt:   firstPublish,
	}

	t.Run("empty fields keep stored values", func(t *testing.T) {
		var updated entity.Post
		repo := &fakeRepository{store: &fakePostsStore{
			getByIDFn: func(ctx context.Context, id string) (entity.Post, error) {
				return stored, nil
			},
			updateFn: func(ctx context.Context, post entity.Post) error {
				updated = post
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.UpdatePost(context.Background(), "01STORED", posts.UpdatePostRequest{
			Title: "New Title",
		})

		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "old-slug", updated.Slug)
		assert.Equal(t, "old content", updated.Content)
		assert.Equal(t, []string{"Go"}, updated.Tags)
		assert.Equal(t, now, updated.UpdatedAt)
		assert.Equal(t, 1, repo.commits)
	})

	t.Run("republishing re-stamps published_at", func(t *testing.T) {
		var updated entity.Post
		repo := &fakeRepository{store: &fakePostsStore{
			getByIDFn: func(ctx context.Context, id string) (entity.Post, error) {
				return stored, nil
			},
			updateFn: func(ctx context.Context, post entity.Post) error {
				updated = post
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.UpdatePost(context.Background(), "01STORED", posts.UpdatePostRequest{
			Status: "published",
		})

		require.NoError(t, err)
		require.NotNil(t, updated.PublishedAt)
		assert.Equal(t, now, *updated.PublishedAt)
	})

	t.Run("archiving keeps the original publish timestamp", func(t *testing.T) {
		var updated entity.Post
		repo := &fakeRepository{store: &fakePostsStore{
			getByIDFn: func(ctx context.Context, id string) (entity.Post, error) {
				return stored, nil
			},
			updateFn: func(ctx context.Context, post entity.Post) error {
				updated = post
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.UpdatePost(context.Background(), "01STORED", posts.UpdatePostRequest{
			Status: "archived",
		})

		require.NoError(t, err)
		require.NotNil(t, updated.PublishedAt)
		assert.Equal(t, firstPublish, *updated.PublishedAt)
		assert.Equal(t, entity.PostStatusArchived, updated.Status)
	})

	t.Run("featured false is an explicit change", func(t *testing.T) {
		featuredStored := stored
		featuredStored.Featured = true

		var updated entity.Post
		repo := &fakeRepository{store: &fakePostsStore{
			getByIDFn: func(ctx context.Context, id string) (entity.Post, error) {
				return featuredStored, nil
			},
			updateFn: func(ctx context.Context, post entity.Post) error {
				updated = post
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		off := false
		_, err := svc.UpdatePost(context.Background(), "01STORED", posts.UpdatePostRequest{
			Featured: &off,
		})

		require.NoError(t, err)
		assert.False(t, updated.Featured)
	})

	t.Run("missing post returns not found", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{
			getByIDFn: func(ctx context.Context, id string) (entity.Post, error) {
				return entity.Post{}, posts.ErrPostNotFound
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.UpdatePost(context.Background(), "missing", posts.UpdatePostRequest{})

		assert.ErrorIs(t, err, posts.ErrPostNotFound)
	})
}

func TestGetPostBySlug(t *testing.T) {
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)

	t.Run("successful read bumps the view counter", func(t *testing.T) {
		var bumped string
		repo := &fakeRepository{store: &fakePostsStore{
			getBySlugFn: func(ctx context.Context, slug string) (entity.Post, error) {
				return entity.Post{ID: "01POST", Slug: slug, Views: 41}, nil
			},
			incrementFn: func(ctx context.Context, slug string) error {
				bumped = slug
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		resp, err := svc.GetPostBySlug(context.Background(), "hello")

		require.NoError(t, err)
		assert.Equal(t, "hello", bumped)
		// The response carries the count the post was read with.
		assert.Equal(t, int64(41), resp.Views)
	})

	t.Run("failed bump does not fail the read", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{
			getBySlugFn: func(ctx context.Context, slug string) (entity.Post, error) {
				return entity.Post{ID: "01POST", Slug: slug}, nil
			},
			incrementFn: func(ctx context.Context, slug string) error {
				return errors.New("deadlock")
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.GetPostBySlug(context.Background(), "hello")

		assert.NoError(t, err)
	})

	t.Run("missing slug returns not found without bumping", func(t *testing.T) {
		incremented := false
		repo := &fakeRepository{store: &fakePostsStore{
			getBySlugFn: func(ctx context.Context, slug string) (entity.Post, error) {
				return entity.Post{}, posts.ErrPostNotFound
			},
			incrementFn: func(ctx context.Context, slug string) error {
				incremented = true
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.GetPostBySlug(context.Background(), "missing")

		assert.ErrorIs(t, err, posts.ErrPostNotFound)
		assert.False(t, incremented)
	})
}

func TestGetFeaturedPosts(t *testing.T) {
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)

	t.Run("asks the repository for at most three posts", func(t *testing.T) {
		var requestedLimit int
		repo := &fakeRepository{store: &fakePostsStore{
			featuredFn: func(ctx context.Context, limit int) ([]entity.Post, error) {
				requestedLimit = limit
				return []entity.Post{{ID: "a"}, {ID: "b"}}, nil
			},
		}}
		svc := newTestService(t, repo, now)

		resp, err := svc.GetFeaturedPosts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, requestedLimit)
		assert.Len(t, resp, 2)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{
			featuredFn: func(ctx context.Context, limit int) ([]entity.Post, error) {
				return nil, errors.New("connection refused")
			},
		}}
		svc := newTestService(t, repo, now)

		_, err := svc.GetFeaturedPosts(context.Background())

		assert.Error(t, err)
	})
}

func TestGetPublishedPosts(t *testing.T) {
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)

	t.Run("pagination translates to limit and offset", func(t *testing.T) {
		var gotLimit, gotOffset int
		repo := &fakeRepository{store: &fakePostsStore{
			publishedFn: func(ctx context.Context, limit, offset int) ([]entity.Post, int, error) {
				gotLimit, gotOffset = limit, offset
				return []entity.Post{{ID: "a"}}, 21, nil
			},
		}}
		svc := newTestService(t, repo, now)

		resp, err := svc.GetPublishedPosts(context.Background(), 3, 10)

		require.NoError(t, err)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, 20, gotOffset)
		assert.Equal(t, 21, resp.Total)
		assert.Len(t, resp.Posts, 1)
	})

	t.Run("empty result is a valid page", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{
			publishedFn: func(ctx context.Context, limit, offset int) ([]entity.Post, int, error) {
				return nil, 0, nil
			},
		}}
		svc := newTestService(t, repo, now)

		resp, err := svc.GetPublishedPosts(context.Background(), 1, 10)

		require.NoError(t, err)
		assert.NotNil(t, resp.Posts)
		assert.Empty(t, resp.Posts)
		assert.Zero(t, resp.Total)
	})
}

func TestDeletePost(t *testing.T) {
	now := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)

	t.Run("delete commits on success", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{
			deleteFn: func(ctx context.Context, id string) error {
				return nil
			},
		}}
		svc := newTestService(t, repo, now)

		err := svc.DeletePost(context.Background(), "01POST")

		require.NoError(t, err)
		assert.Equal(t, 1, repo.commits)
	})

	t.Run("missing id is not found, not success", func(t *testing.T) {
		repo := &fakeRepository{store: &fakePostsStore{
			deleteFn: func(ctx context.Context, id string) error {
				return posts.ErrPostNotFound
			},
		}}
		svc := newTestService(t, repo, now)

		err := svc.DeletePost(context.Background(), "missing")

		assert.ErrorIs(t, err, posts.ErrPostNotFound)
		assert.Equal(t, 0, repo.commits)
	})
}
