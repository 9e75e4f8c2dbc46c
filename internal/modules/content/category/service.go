package category

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
	errNotFound  = errors.New("category not found")
	errSlugTaken = errors.New("category slug already in use")
)

// CategoryDTO is the payload for creating or updating a category.
type CategoryDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type Service struct {
	db     *gorm.DB
	signal *revalidate.Signaler
}

func NewService(db *gorm.DB, signal *revalidate.Signaler) *Service {
	return &Service{db: db, signal: signal}
}

// ListItem is a category with its published post count.
type ListItem struct {
	models.CategoryModel
	PostCount int64 `json:"post_count"`
}

func (s *Service) List() ([]ListItem, error) {
	var categories []models.CategoryModel
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, len(categories))
	for i, cat := range categories {
		items[i] = ListItem{CategoryModel: cat}
	}
	if len(items) == 0 {
		return items, nil
	}

	type row struct {
		CategoryID string
		N          int64
	}
	var rows []row
	err := s.db.Model(&models.PostModel{}).
		Select("category_id, COUNT(*) AS n").
		Where("category_id IS NOT NULL AND status = ?", models.PostPublished).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.N
	}
	for i := range items {
		items[i].PostCount = counts[items[i].ID]
	}
	return items, nil
}

func (s *Service) GetBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(ctx context.Context, dto *CategoryDTO) (*models.CategoryModel, error) {
	slug, err := s.availableSlug(dto.Name, "")
	if err != nil {
		return nil, err
	}

	cat := models.CategoryModel{
		Name:        dto.Name,
		Slug:        slug,
		Description: dto.Description,
		Color:       dto.Color,
	}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}

	s.signal.MarkStale(ctx, revalidate.PostListView())
	return &cat, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *CategoryDTO) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}

	slug, err := s.availableSlug(dto.Name, cat.ID)
	if err != nil {
		return nil, err
	}

	cat.Name = dto.Name
	cat.Slug = slug
	cat.Description = dto.Description
	cat.Color = dto.Color
	if err := s.db.WithContext(ctx).
		Select("name", "slug", "description", "color").
		Updates(&cat).Error; err != nil {
		return nil, err
	}

	s.signal.MarkStale(ctx, revalidate.PostListView())
	return &cat, nil
}

// Delete removes the category. Posts in it are kept and detached.
func (s *Service) Delete(ctx context.Context, id string) error {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostModel{}).
			Where("category_id = ?", cat.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&cat).Error
	})
	if err != nil {
		return err
	}

	s.signal.MarkStale(ctx, revalidate.PostListView())
	return nil
}

// availableSlug rejects rather than suffixes: category slugs are chosen
// deliberately, a silent rename would surprise the author.
func (s *Service) availableSlug(name, excludeID string) (string, error) {
	slug := slugpkg.Make(name)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	var count int64
	q := s.db.Model(&models.CategoryModel{}).Where("slug = ?", slug)
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
