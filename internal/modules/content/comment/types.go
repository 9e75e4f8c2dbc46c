package comment

import "errors"

var (
	errUnauthenticated = errors.New("author is required")
	errContentLength   = errors.New("comment content length out of bounds")
	errPostNotFound    = errors.New("post not found")
	errCommentNotFound = errors.New("comment not found")
	errParentNotFound  = errors.New("parent comment not found")
	errParentMismatch  = errors.New("parent comment belongs to another post")
	errNotAuthor       = errors.New("caller is not the comment author")
	errNotPostAuthor   = errors.New("caller is not the post author")
	errInvalidStatus   = errors.New("invalid comment status")
	errDisabled        = errors.New("comments are disabled")
)

// CreateCommentDTO is the payload for creating a comment or reply.
type CreateCommentDTO struct {
	PostID   string  `json:"post_id" binding:"required"`
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parent_id"`
}

// UpdateStatusDTO is the payload for moderating a comment.
type UpdateStatusDTO struct {
	Status string `json:"status" binding:"required"`
}
