package postService

import (
	posts "MeridianBackend/internal/api/post"
	"MeridianBackend/internal/entity"
	"fmt"
	"regexp"
	"strings"
)

const (
	wordsPerMinute  = 200
	defaultCategory = "General"
)

var markupTagPattern = regexp.MustCompile(`<[^>]*>`)

// estimateReadTime strips markup, counts words and rounds up to whole
// minutes at 200 words per minute. Posts with no readable content still
// report "1 min read"; live pages already display that floor.
func estimateReadTime(content string) string {
	plain := markupTagPattern.ReplaceAllString(content, " ")
	words := len(strings.Fields(plain))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d min read", minutes)
}

// deriveCategory picks the first tag; tag order is meaningful.
func deriveCategory(tags []string) string {
	if len(tags) > 0 {
		return tags[0]
	}
	return defaultCategory
}

func makePostResponse(post entity.Post) posts.PostResponse {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	return posts.PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Excerpt:       post.Excerpt,
		Content:       post.Content,
		Author:        post.Author,
		Status:        string(post.Status),
		PublishedDate: post.PublishedDate(),
		ReadTime:      estimateReadTime(post.Content),
		Category:      deriveCategory(post.Tags),
		Tags:          tags,
		CoverImage:    post.CoverImage,
		Featured:      post.Featured,
		Views:         post.Views,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}
