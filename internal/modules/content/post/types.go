package post

import (
	"errors"

	"github.com/inkwell-blog/core/internal/models"
)

var (
	errPostNotFound     = errors.New("post not found")
	errNotAuthor        = errors.New("caller is not the post author")
	errCategoryNotFound = errors.New("category not found")
	errTagNotFound      = errors.New("tag not found")
	errInvalidStatus    = errors.New("invalid post status")
)

// PostDTO is the payload for creating or updating a post.
type PostDTO struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featured_image"`
	CategoryID    *string  `json:"category_id"`
	TagIDs        []string `json:"tag_ids"`
	Status        string   `json:"status"`
}

// ListFilter narrows the public post listing.
type ListFilter struct {
	CategorySlug string
	TagSlug      string
	Author       string
	Search       string
}

// ListItem is a post row in list responses, with its approved comment count.
type ListItem struct {
	models.PostModel
	CommentCount int64 `json:"comment_count"`
}

// View is a rendered post for the public reading page.
type View struct {
	*models.PostModel
	ContentHTML  string `json:"content_html"`
	CommentCount int64  `json:"comment_count"`
}
