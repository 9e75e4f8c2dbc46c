package models

// TagModel labels posts. Posts and tags are many-to-many through post_tags.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	Posts []PostModel `json:"posts,omitempty" gorm:"many2many:post_tags;joinForeignKey:TagID;joinReferences:PostID"`
}

func (TagModel) TableName() string { return "tags" }
