package postService

import (
	"MeridianBackend/internal/entity"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "empty content keeps the one minute floor",
			content:  "",
			expected: "1 min read",
		},
		{
			name:     "markup only content keeps the one minute floor",
			content:  "<p></p><br/><img src=\"x.png\"/>",
			expected: "1 min read",
		},
		{
			name:     "short content rounds up to one minute",
			content:  "just a few words here",
			expected: "1 min read",
		},
		{
			name:     "exactly two hundred words is one minute",
			content:  strings.Repeat("word ", 200),
			expected: "1 min read",
		},
		{
			name:     "two hundred and one words rounds up to two minutes",
			content:  strings.Repeat("word ", 201),
			expected: "2 min read",
		},
		{
			name:     "markup tags do not count as words",
			content:  "<h1>Title</h1><p>" + strings.Repeat("word ", 199) + "</p>",
			expected: "1 min read",
		},
		{
			name:     "tags glueing words still splits them",
			content:  "first<br>second",
			expected: "1 min read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, estimateReadTime(tt.content))
		})
	}
}

func TestDeriveCategory(t *testing.T) {
	assert.Equal(t, "Engineering", deriveCategory([]string{"Engineering", "Go"}))
	assert.Equal(t, "General", deriveCategory(nil))
	assert.Equal(t, "General", deriveCategory([]string{}))
}

func TestMakePostResponse(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	publishedAt := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("published post uses published_at as published date", func(t *testing.T) {
		post := entity.Post{
			ID:          "01POST",
			Title:       "Hello",
			Slug:        "hello",
			Content:     strings.Repeat("word ", 400),
			Status:      entity.PostStatusPublished,
			Tags:        []string{"Go", "Backend"},
			PublishedAt: &publishedAt,
			CreatedAt:   createdAt,
		}

		resp := makePostResponse(post)

		assert.Equal(t, publishedAt, resp.PublishedDate)
		assert.Equal(t, "2 min read", resp.ReadTime)
		assert.Equal(t, "Go", resp.Category)
	})

	t.Run("draft falls back to created_at", func(t *testing.T) {
		post := entity.Post{
			ID:        "01POST",
			Status:    entity.PostStatusDraft,
			CreatedAt: createdAt,
		}

		resp := makePostResponse(post)

		assert.Equal(t, createdAt, resp.PublishedDate)
	})

	t.Run("nil tags serialize as an empty list", func(t *testing.T) {
		resp := makePostResponse(entity.Post{ID: "01POST"})

		assert.NotNil(t, resp.Tags)
		assert.Empty(t, resp.Tags)
		assert.Equal(t, "General", resp.Category)
	})
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
	}{
		{"defaults applied for zero values", 0, 0, 1, 10},
		{"negative page resets to first", -3, 25, 1, 25},
		{"oversized limit resets to default", 2, 500, 2, 10},
		{"valid values pass through", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := normalizePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
