package postRepository

import (
	posts "MeridianBackend/internal/api/post"
	"MeridianBackend/internal/entity"
	contextPkg "MeridianBackend/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type PostDB struct {
	ID          sql.NullString `db:"id"`
	Title       sql.NullString `db:"title"`
	Slug        sql.NullString `db:"slug"`
	Excerpt     sql.NullString `db:"excerpt"`
	Content     sql.NullString `db:"content"`
	Author      sql.NullString `db:"author"`
	Status      sql.NullString `db:"status"`
	Tags        pq.StringArray `db:"tags"`
	CoverImage  sql.NullString `db:"cover_image"`
	Featured    bool           `db:"featured"`
	Views       int64          `db:"views"`
	PublishedAt sql.NullTime   `db:"published_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

const uniqueViolationCode = "23505"

func (r *postsRepository) CreatePost(ctx context.Context, post entity.Post) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"excerpt":      post.Excerpt,
		"content":      post.Content,
		"author":       post.Author,
		"status":       string(post.Status),
		"tags":         pq.Array(post.Tags),
		"cover_image":  post.CoverImage,
		"featured":     post.Featured,
		"views":        post.Views,
		"published_at": post.PublishedAt,
		"created_at":   post.CreatedAt,
		"updated_at":   post.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreatePost named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       post.Slug,
			}).Warn("CreatePost slug already exists")
			return posts.ErrSlugAlreadyExists
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating post")
		return err
	}

	return nil
}

func (r *postsRepository) GetPostByID(ctx context.Context, id string) (entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var post PostDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetPostByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostByID named query preparation err")
		return entity.Post{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetPostByID no rows found")
			return entity.Post{}, posts.ErrPostNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostByID execution err")
		return entity.Post{}, err
	}

	return r.makePost(post), nil
}

func (r *postsRepository) GetPostBySlug(ctx context.Context, slug string) (entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var post PostDB

	argsKV := map[string]interface{}{
		"slug": slug,
	}

	query, args, err := sqlx.Named(queryGetPostBySlug, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostBySlug named query preparation err")
		return entity.Post{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       slug,
			}).Warn("GetPostBySlug no rows found")
			return entity.Post{}, posts.ErrPostNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostBySlug execution err")
		return entity.Post{}, err
	}

	return r.makePost(post), nil
}

func (r *postsRepository) GetAllPosts(ctx context.Context, limit, offset int) ([]entity.Post, int, error) {
	return r.listPosts(ctx, queryGetAllPosts, queryCountAllPosts, limit, offset, "GetAllPosts")
}

func (r *postsRepository) GetPublishedPosts(ctx context.Context, limit, offset int) ([]entity.Post, int, error) {
	return r.listPosts(ctx, queryGetPublishedPosts, queryCountPublishedPosts, limit, offset, "GetPublishedPosts")
}

func (r *postsRepository) listPosts(ctx context.Context, listQuery, countQuery string, limit, offset int, op string) ([]entity.Post, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var postsList []PostDB
	var total int

	cq, countArgs, err := sqlx.Named(countQuery, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("count named query preparation err")
		return nil, 0, err
	}

	cq = r.q.Rebind(cq)

	if err := r.q.QueryRowxContext(ctx, cq, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("count execution err")
		return nil, 0, err
	}

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(listQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("list named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &postsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("list execution err")
		return nil, 0, err
	}

	var result []entity.Post
	for _, postDB := range postsList {
		result = append(result, r.makePost(postDB))
	}

	return result, total, nil
}

func (r *postsRepository) GetFeaturedPosts(ctx context.Context, limit int) ([]entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var postsList []PostDB

	argsKV := map[string]interface{}{
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetFeaturedPosts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFeaturedPosts named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &postsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFeaturedPosts execution err")
		return nil, err
	}

	var result []entity.Post
	for _, postDB := range postsList {
		result = append(result, r.makePost(postDB))
	}

	return result, nil
}

// IncrementViews bumps the view counter in a single atomic UPDATE so
// concurrent slug fetches never lose a count.
func (r *postsRepository) IncrementViews(ctx context.Context, slug string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"slug": slug,
	}

	query, args, err := sqlx.Named(queryIncrementViews, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IncrementViews named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       slug,
			"error":      err.Error(),
		}).Error("IncrementViews execution err")
		return err
	}

	return nil
}

func (r *postsRepository) UpdatePost(ctx context.Context, post entity.Post) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"excerpt":      post.Excerpt,
		"content":      post.Content,
		"author":       post.Author,
		"status":       string(post.Status),
		"tags":         pq.Array(post.Tags),
		"cover_image":  post.CoverImage,
		"featured":     post.Featured,
		"published_at": post.PublishedAt,
		"updated_at":   post.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       post.Slug,
			}).Warn("UpdatePost slug already exists")
			return posts.ErrSlugAlreadyExists
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         post.ID,
		}).Warn("UpdatePost no rows affected")
		return posts.ErrPostNotFound
	}

	return nil
}

func (r *postsRepository) DeletePost(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeletePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("DeletePost no rows affected")
		return posts.ErrPostNotFound
	}

	return nil
}

func (r *postsRepository) makePost(post PostDB) entity.Post {
	var publishedAt *time.Time
	if post.PublishedAt.Valid {
		t := post.PublishedAt.Time
		publishedAt = &t
	}

	return entity.Post{
		ID:          post.ID.String,
		Title:       post.Title.String,
		Slug:        post.Slug.String,
		Excerpt:     post.Excerpt.String,
		Content:     post.Content.String,
		Author:      post.Author.String,
		Status:      entity.PostStatus(post.Status.String),
		Tags:        post.Tags,
		CoverImage:  post.CoverImage.String,
		Featured:    post.Featured,
		Views:       post.Views,
		PublishedAt: publishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
