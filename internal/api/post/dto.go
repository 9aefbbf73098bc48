package posts

import "time"

type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,min=3,max=256"`
	Slug       string   `json:"slug" validate:"required,min=3,max=256"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=512"`
	Content    string   `json:"content" validate:"required"`
	Author     string   `json:"author" validate:"required,max=128"`
	Status     string   `json:"status" validate:"required,oneof=draft published archived"`
	Tags       []string `json:"tags" validate:"omitempty,dive,min=1"`
	CoverImage string   `json:"cover_image" validate:"omitempty"`
	Featured   bool     `json:"featured"`
}

type UpdatePostRequest struct {
	Title      string   `json:"title" validate:"omitempty,min=3,max=256"`
	Slug       string   `json:"slug" validate:"omitempty,min=3,max=256"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=512"`
	Content    string   `json:"content" validate:"omitempty"`
	Author     string   `json:"author" validate:"omitempty,max=128"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	Tags       []string `json:"tags" validate:"omitempty,dive,min=1"`
	CoverImage string   `json:"cover_image" validate:"omitempty"`
	Featured   *bool    `json:"featured" validate:"omitempty"`
}

type PostResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	Status        string    `json:"status"`
	PublishedDate time.Time `json:"published_date"`
	ReadTime      string    `json:"read_time"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	CoverImage    string    `json:"cover_image"`
	Featured      bool      `json:"featured"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int            `json:"total"`
}
