package models

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)

// CommentModel is a comment on a post. Top-level comments have a nil
// ParentID; replies point at a comment on the same post. AuthorID and PostID
// never change after creation.
type CommentModel struct {
	Base
	Content  string        `json:"content"   gorm:"type:text;not null"`
	AuthorID string        `json:"author_id" gorm:"type:char(36);index;not null"`
	PostID   string        `json:"post_id"   gorm:"type:char(36);index;not null"`
	ParentID *string       `json:"parent_id" gorm:"type:char(36);index"`
	Status   CommentStatus `json:"status"    gorm:"type:varchar(16);default:'approved';index"`

	Author  *ProfileModel  `json:"author,omitempty"  gorm:"foreignKey:AuthorID;references:ID"`
	Replies []CommentModel `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}

func (CommentModel) TableName() string { return "comments" }
