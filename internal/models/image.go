package models

// ImageModel records an uploaded image stored in the S3 bucket.
type ImageModel struct {
	Base
	OwnerID     string `json:"owner_id"     gorm:"type:char(36);index;not null"`
	FileName    string `json:"file_name"    gorm:"not null"`
	ObjectKey   string `json:"object_key"   gorm:"uniqueIndex;not null"`
	URL         string `json:"url"          gorm:"not null"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func (ImageModel) TableName() string { return "images" }
