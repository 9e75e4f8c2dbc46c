package dashboard

import (
	"github.com/inkwell-blog/core/internal/models"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Stats summarizes the caller's publishing activity.
type Stats struct {
	Posts struct {
		Total     int64 `json:"total"`
		Published int64 `json:"published"`
		Draft     int64 `json:"draft"`
		Archived  int64 `json:"archived"`
	} `json:"posts"`
	Comments struct {
		Approved int64 `json:"approved"`
		Pending  int64 `json:"pending"`
	} `json:"comments"`
	Reads int64 `json:"reads"`
}

func (s *Service) Stats(userID string) (*Stats, error) {
	var stats Stats

	type statusRow struct {
		Status models.PostStatus
		N      int64
	}
	var rows []statusRow
	err := s.db.Model(&models.PostModel{}).
		Select("status, COUNT(*) AS n").
		Where("author_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.Posts.Total += r.N
		switch r.Status {
		case models.PostPublished:
			stats.Posts.Published = r.N
		case models.PostDraft:
			stats.Posts.Draft = r.N
		case models.PostArchived:
			stats.Posts.Archived = r.N
		}
	}

	ownPosts := s.db.Model(&models.PostModel{}).Select("id").Where("author_id = ?", userID)

	err = s.db.Model(&models.CommentModel{}).
		Where("post_id IN (?) AND status = ?", ownPosts, models.CommentApproved).
		Count(&stats.Comments.Approved).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Model(&models.CommentModel{}).
		Where("post_id IN (?) AND status = ?", ownPosts, models.CommentPending).
		Count(&stats.Comments.Pending).Error
	if err != nil {
		return nil, err
	}

	var reads *int64
	err = s.db.Model(&models.PostModel{}).
		Select("SUM(read_count)").
		Where("author_id = ?", userID).
		Scan(&reads).Error
	if err != nil {
		return nil, err
	}
	if reads != nil {
		stats.Reads = *reads
	}

	return &stats, nil
}

// RecentPosts returns the caller's latest posts in any status.
func (s *Service) RecentPosts(userID string, limit int) ([]models.PostModel, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	var posts []models.PostModel
	err := s.db.Where("author_id = ?", userID).
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
