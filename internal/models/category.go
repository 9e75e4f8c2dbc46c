package models

// CategoryModel groups posts. A post belongs to at most one category.
type CategoryModel struct {
	Base
	Name        string `json:"name"        gorm:"not null"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Color       string `json:"color"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }
