package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inkwell-blog/core/internal/models"
	"github.com/inkwell-blog/core/internal/pkg/revalidate"
	slugpkg "github.com/inkwell-blog/core/internal/pkg/slug"
	"gorm.io/gorm"
)

var (
	errNotFound  = errors.New("tag not found")
	errSlugTaken = errors.New("tag slug already in use")
)

// TagDTO is the payload for creating or renaming a tag.
type TagDTO struct {
	Name string `json:"name" binding:"required"`
}

type Service struct {
	db     *gorm.DB
	signal *revalidate.Signaler
}

func NewService(db *gorm.DB, signal *revalidate.Signaler) *Service {
	return &Service{db: db, signal: signal}
}

// ListItem is a tag with the number of published posts carrying it.
type ListItem struct {
	models.TagModel
	PostCount int64 `json:"post_count"`
}

func (s *Service) List() ([]ListItem, error) {
	var tags []models.TagModel
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, len(tags))
	for i, tg := range tags {
		items[i] = ListItem{TagModel: tg}
	}
	if len(items) == 0 {
		return items, nil
	}

	type row struct {
		TagID string
		N     int64
	}
	var rows []row
	err := s.db.Table("post_tags").
		Select("post_tags.tag_id, COUNT(*) AS n").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("posts.status = ? AND posts.deleted_at IS NULL", models.PostPublished).
		Group("post_tags.tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.TagID] = r.N
	}
	for i := range items {
		items[i].PostCount = counts[items[i].ID]
	}
	return items, nil
}

func (s *Service) GetBySlug(slug string) (*models.TagModel, error) {
	var tg models.TagModel
	if err := s.db.First(&tg, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &tg, nil
}

func (s *Service) Create(ctx context.Context, dto *TagDTO) (*models.TagModel, error) {
	slug, err := s.availableSlug(dto.Name, "")
	if err != nil {
		return nil, err
	}

	tg := models.TagModel{Name: dto.Name, Slug: slug}
	if err := s.db.WithContext(ctx).Create(&tg).Error; err != nil {
		return nil, err
	}

	s.signal.MarkStale(ctx, revalidate.PostListView())
	return &tg, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *TagDTO) (*models.TagModel, error) {
	var tg models.TagModel
	if err := s.db.First(&tg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}

	slug, err := s.availableSlug(dto.Name, tg.ID)
	if err != nil {
		return nil, err
	}

	tg.Name = dto.Name
	tg.Slug = slug
	if err := s.db.WithContext(ctx).Select("name", "slug").Updates(&tg).Error; err != nil {
		return nil, err
	}

	s.signal.MarkStale(ctx, revalidate.PostListView())
	return &tg, nil
}

// Delete removes the tag and its post links.
func (s *Service) Delete(ctx context.Context, id string) error {
	var tg models.TagModel
	if err := s.db.First(&tg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tg).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&tg).Error
	})
	if err != nil {
		return err
	}

	s.signal.MarkStale(ctx, revalidate.PostListView())
	return nil
}

func (s *Service) availableSlug(name, excludeID string) (string, error) {
	slug := slugpkg.Make(name)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	var count int64
	q := s.db.Model(&models.TagModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", errSlugTaken
	}
	return slug, nil
}
