package profile

import (
	"errors"
	"strings"

	"github.com/inkwell-blog/core/internal/models"
	"gorm.io/gorm"
)

var (
	errNotFound      = errors.New("profile not found")
	errUsernameTaken = errors.New("username already taken")
)

// UpdateDTO is the payload for editing one's own profile.
type UpdateDTO struct {
	Username  string `json:"username" binding:"required,min=2,max=32"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	Website   string `json:"website"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// PublicProfile is a profile with its published post count.
type PublicProfile struct {
	models.ProfileModel
	PostCount int64 `json:"post_count"`
}

func (s *Service) GetByUsername(username string) (*PublicProfile, error) {
	var p models.ProfileModel
	if err := s.db.First(&p, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}

	var posts int64
	err := s.db.Model(&models.PostModel{}).
		Where("author_id = ? AND status = ?", p.ID, models.PostPublished).
		Count(&posts).Error
	if err != nil {
		return nil, err
	}
	return &PublicProfile{ProfileModel: p, PostCount: posts}, nil
}

func (s *Service) Get(userID string) (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := s.db.First(&p, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) Update(userID string, dto *UpdateDTO) (*models.ProfileModel, error) {
	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(dto.Username)
	if username != p.Username {
		var count int64
		err := s.db.Model(&models.ProfileModel{}).
			Where("username = ? AND id <> ?", username, userID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errUsernameTaken
		}
	}

	p.Username = username
	p.FullName = dto.FullName
	p.AvatarURL = dto.AvatarURL
	p.Bio = dto.Bio
	p.Website = dto.Website
	if err := s.db.Select("username", "full_name", "avatar_url", "bio", "website").
		Updates(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}
