package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

// PostModel is a blog post.
type PostModel struct {
	Base
	Title         string     `json:"title"          gorm:"not null"`
	Slug          string     `json:"slug"           gorm:"uniqueIndex;not null"`
	Content       string     `json:"content"        gorm:"type:longtext"`
	Excerpt       string     `json:"excerpt"        gorm:"type:text"`
	FeaturedImage string     `json:"featured_image"`
	Status        PostStatus `json:"status"         gorm:"type:varchar(16);default:'draft';index"`
	AuthorID      string     `json:"author_id"      gorm:"type:char(36);index;not null"`
	CategoryID    *string    `json:"category_id"    gorm:"type:char(36);index"`
	PublishedAt   *time.Time `json:"published_at"`
	ReadCount     int        `json:"read_count"     gorm:"default:0"`

	Author   *ProfileModel  `json:"author,omitempty"   gorm:"foreignKey:AuthorID;references:ID"`
	Category *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags     []TagModel     `json:"tags,omitempty"     gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID"`
}

func (PostModel) TableName() string { return "posts" }

func (p *PostModel) IsPublished() bool { return p.Status == PostPublished }
