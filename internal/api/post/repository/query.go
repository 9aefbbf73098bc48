package postRepository

const (
	queryCreatePost = `
		INSERT INTO posts (
			id,
			title,
			slug,
			excerpt,
			content,
			author,
			status,
			tags,
			cover_image,
			featured,
			views,
			published_at,
			created_at,
			updated_at
		) VALUES (
			:id,
			:title,
			:slug,
			:excerpt,
			:content,
			:author,
			:status,
			:tags,
			:cover_image,
			:featured,
			:views,
			:published_at,
			:created_at,
			:updated_at
		)
	`

	queryGetPostByID = `
		SELECT
			id,
			title,
			slug,
			excerpt,
			content,
			author,
			status,
			tags,
			cover_image,
			featured,
			views,
			published_at,
			created_at,
			updated_at
		FROM posts
		WHERE id = :id
	`

	queryGetPostBySlug = `
		SELECT
			id,
			title,
			slug,
			excerpt,
			content,
			author,
			status,
			tags,
			cover_image,
			featured,
			views,
			published_at,
			created_at,
			updated_at
		FROM posts
		WHERE slug = :slug
	`

	queryGetAllPosts = `
		SELECT
			id,
			title,
			slug,
			excerpt,
			content,
			author,
			status,
			tags,
			cover_image,
			featured,
			views,
			published_at,
			created_at,
			updated_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountAllPosts = `
		SELECT COUNT(*)
		FROM posts
	`

	queryGetPublishedPosts = `
		SELECT
			id,
			title,
			slug,
			excerpt,
			content,
			author,
			status,
			tags,
			cover_image,
			featured,
			views,
			published_at,
			created_at,
			updated_at
		FROM posts
		WHERE status = 'published'
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountPublishedPosts = `
		SELECT COUNT(*)
		FROM posts
		WHERE status = 'published'
	`

	queryGetFeaturedPosts = `
		SELECT
			id,
			title,
			slug,
			excerpt,
			content,
			author,
			status,
			tags,
			cover_image,
			featured,
			views,
			published_at,
			created_at,
			updated_at
		FROM posts
		WHERE status = 'published' AND featured = TRUE
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT :limit
	`

	queryIncrementViews = `
		UPDATE posts
		SET views = views + 1
		WHERE slug = :slug
	`

	queryUpdatePost = `
		UPDATE posts
		SET
			title = :title,
			slug = :slug,
			excerpt = :excerpt,
			content = :content,
			author = :author,
			status = :status,
			tags = :tags,
			cover_image = :cover_image,
			featured = :featured,
			published_at = :published_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeletePost = `
		DELETE FROM posts
		WHERE id = :id
	`
)
